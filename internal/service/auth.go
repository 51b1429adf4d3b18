package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/subhashree8125/rental-platform/internal/model"
	"github.com/subhashree8125/rental-platform/internal/session"
	"github.com/subhashree8125/rental-platform/internal/store"
)

// AuthService validates credentials and creates user accounts.
type AuthService struct {
	users *store.UserStore
}

// NewAuthService creates an AuthService over the given user store.
func NewAuthService(users *store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup registers a new account with a salted password hash. Email
// uniqueness is enforced by the store's unique index.
func (s *AuthService) Signup(fullName, email, mobile, password string) (uint, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	mobile = strings.TrimSpace(mobile)
	if fullName == "" || email == "" || mobile == "" || password == "" {
		return 0, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	hashStr := string(hash)
	user := model.User{
		FullName:     fullName,
		Email:        email,
		MobileNumber: mobile,
		PasswordHash: &hashStr,
	}
	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return user.ID, nil
}

// Login resolves the identifier as an email when it contains "@" and as a
// mobile number otherwise, then verifies the password against the stored
// hash. Accounts without a password (phone-auth only) fail with
// ErrMissingPassword rather than ErrInvalidCredentials so the client can
// offer the alternate flow.
func (s *AuthService) Login(identifier, password string) (session.Identity, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return session.Identity{}, ErrInvalidCredentials
	}

	var user *model.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(identifier)
	} else {
		user, err = s.users.FindByMobile(identifier)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return session.Identity{}, ErrInvalidCredentials
		}
		return session.Identity{}, err
	}

	if !user.HasPassword() {
		return session.Identity{}, ErrMissingPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return session.Identity{}, ErrInvalidCredentials
	}

	return session.Identity{
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
	}, nil
}
