package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/subhashree8125/rental-platform/internal/model"
)

// ErrDuplicateEmail is returned when a create hits the unique email index.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore provides access to persisted user records. The database handle is
// injected rather than pulled from package state.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore backed by db.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. Email uniqueness is enforced by the store's
// unique index; a violation surfaces as ErrDuplicateEmail.
func (s *UserStore) Create(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID returns the user with the given id.
func (s *UserStore) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// FindByEmail returns the user with the given email.
func (s *UserStore) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// FindByMobile returns the user with the given mobile number.
func (s *UserStore) FindByMobile(mobile string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("mobile_number = ?", mobile).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// Update persists changes to an existing user.
func (s *UserStore) Update(user *model.User) error {
	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user and all properties they own in one transaction, so a
// partial failure rolls the whole cascade back.
func (s *UserStore) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&model.Property{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
