package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Identity is the minimal user payload held in a session. It replaces the
// loosely-shaped session dictionary with a defined record type.
type Identity struct {
	UserID       uint   `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
}

type entry struct {
	identity  Identity
	expiresAt time.Time
}

// Store is a process-wide session registry keyed by an opaque token. Each
// entry expires after the configured TTL; expired entries are dropped on
// lookup and by a periodic sweep.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	done    chan struct{}
}

// NewStore creates a session store with the given entry lifetime and starts
// the background sweep.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Create registers a new session for the identity and returns its token.
func (s *Store) Create(id Identity) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.entries[token] = entry{
		identity:  id,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token
}

// Get returns the identity for a token, if the session exists and has not
// expired.
func (s *Store) Get(token string) (Identity, bool) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}
	if time.Now().After(e.expiresAt) {
		s.Delete(token)
		return Identity{}, false
	}
	return e.identity, true
}

// Delete removes a session. Removing an unknown token is a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
}

// DeleteUser removes every session belonging to the given user. Used when an
// account is deleted so stale cookies stop working immediately.
func (s *Store) DeleteUser(userID uint) {
	s.mu.Lock()
	for token, e := range s.entries {
		if e.identity.UserID == userID {
			delete(s.entries, token)
		}
	}
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweep.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) sweep() {
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
