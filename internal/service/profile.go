package service

import (
	"errors"

	"github.com/subhashree8125/rental-platform/internal/model"
	"github.com/subhashree8125/rental-platform/internal/store"
)

// ProfileUpdate carries a partial account update. Email is immutable.
type ProfileUpdate struct {
	FullName     *string `json:"full_name"`
	MobileNumber *string `json:"mobile_number"`
	ProfileImage *string `json:"profile_image"`
}

// ProfileService handles self-service account management.
type ProfileService struct {
	users *store.UserStore
}

// NewProfileService creates a ProfileService over the given user store.
func NewProfileService(users *store.UserStore) *ProfileService {
	return &ProfileService{users: users}
}

// Get returns the account record for the session user.
func (s *ProfileService) Get(userID uint) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the session user's account.
func (s *ProfileService) Update(userID uint, in ProfileUpdate) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		if *in.FullName == "" {
			return nil, ErrValidation
		}
		user.FullName = *in.FullName
	}
	if in.MobileNumber != nil {
		if *in.MobileNumber == "" {
			return nil, ErrValidation
		}
		user.MobileNumber = *in.MobileNumber
	}
	if in.ProfileImage != nil {
		user.ProfileImage = in.ProfileImage
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account and cascades to every listing it owns.
func (s *ProfileService) Delete(userID uint) error {
	if err := s.users.Delete(userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
