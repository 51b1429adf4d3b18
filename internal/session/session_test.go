package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	id := Identity{UserID: 7, FullName: "Test User", Email: "test@example.com", MobileNumber: "9876543210"}
	token := s.Create(id)
	require.NotEmpty(t, token)

	got, ok := s.Get(token)
	require.True(t, ok)
	assert.Equal(t, id, got)

	// Unknown token
	_, ok = s.Get("no-such-token")
	assert.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	id := Identity{UserID: 1}
	a := s.Create(id)
	b := s.Create(id)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())
}

func TestExpiry(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	defer s.Close()

	token := s.Create(Identity{UserID: 1})
	time.Sleep(20 * time.Millisecond)

	_, ok := s.Get(token)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestDelete(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	token := s.Create(Identity{UserID: 1})
	s.Delete(token)
	_, ok := s.Get(token)
	assert.False(t, ok)

	// Deleting again is a no-op
	s.Delete(token)
}

func TestDeleteUser(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	t1 := s.Create(Identity{UserID: 1})
	t2 := s.Create(Identity{UserID: 1})
	t3 := s.Create(Identity{UserID: 2})

	s.DeleteUser(1)

	_, ok := s.Get(t1)
	assert.False(t, ok)
	_, ok = s.Get(t2)
	assert.False(t, ok)
	_, ok = s.Get(t3)
	assert.True(t, ok)
}
