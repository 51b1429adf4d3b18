package service

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/subhashree8125/rental-platform/internal/model"
	"github.com/subhashree8125/rental-platform/internal/storage"
	"github.com/subhashree8125/rental-platform/internal/store"
)

// ListingInput carries the submitted fields for a new listing. RentPrice
// arrives as the raw form value and is parsed here.
type ListingInput struct {
	FullName     string
	MobileNumber string
	Address      string
	City         string
	Area         string
	District     string
	PropertyType string
	HouseType    string
	RentPrice    string
	CarParking   string
	Pets         string
	Facing       string
	Furnishing   string
	Description  string
}

// ListingUpdate carries a partial update. Nil fields are left unchanged.
// Only this fixed set of fields can be modified; owner and status are
// handled elsewhere.
type ListingUpdate struct {
	FullName     *string `json:"full_name"`
	MobileNumber *string `json:"mobile_number"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Area         *string `json:"area"`
	District     *string `json:"district"`
	PropertyType *string `json:"property_type"`
	HouseType    *string `json:"house_type"`
	RentPrice    *string `json:"rent_price"`
	CarParking   *string `json:"car_parking"`
	Pets         *string `json:"pets"`
	Facing       *string `json:"facing"`
	Furnishing   *string `json:"furnishing"`
	Description  *string `json:"description"`
}

// ListingService implements the property listing operations: creation with
// image uploads, the filtered public feed, and owner-only mutations.
type ListingService struct {
	properties *store.PropertyStore
	images     *storage.ImageStore
}

// NewListingService creates a ListingService.
func NewListingService(properties *store.PropertyStore, images *storage.ImageStore) *ListingService {
	return &ListingService{properties: properties, images: images}
}

// Create validates the input, saves the uploaded images in order and
// persists a new listing owned by ownerID with status Available.
func (s *ListingService) Create(ownerID uint, in ListingInput, files []*multipart.FileHeader) (*model.Property, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.MobileNumber) == "" ||
		strings.TrimSpace(in.Address) == "" ||
		strings.TrimSpace(in.PropertyType) == "" ||
		strings.TrimSpace(in.HouseType) == "" {
		return nil, ErrValidation
	}
	if !model.ValidCarParking(in.CarParking) {
		return nil, ErrValidation
	}
	if !model.ValidPets(in.Pets) {
		return nil, ErrValidation
	}
	rent, err := parseRentPrice(in.RentPrice)
	if err != nil {
		return nil, err
	}

	// Image files are written before the row is committed; a store failure
	// after this point leaves orphaned files behind (accepted, see Remove).
	filenames, err := s.images.SaveAll(files)
	if err != nil {
		return nil, err
	}

	p := model.Property{
		OwnerID:      ownerID,
		FullName:     in.FullName,
		MobileNumber: in.MobileNumber,
		Address:      in.Address,
		City:         in.City,
		Area:         in.Area,
		District:     in.District,
		PropertyType: in.PropertyType,
		HouseType:    in.HouseType,
		RentPrice:    rent,
		CarParking:   in.CarParking,
		Pets:         in.Pets,
		Facing:       in.Facing,
		Furnishing:   in.Furnishing,
		Description:  in.Description,
		Images:       filenames,
		Status:       model.StatusAvailable,
	}
	if err := s.properties.Create(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the public feed of Available listings matching the filter,
// newest first.
func (s *ListingService) List(filter store.ListFilter) ([]model.Property, error) {
	return s.properties.List(filter)
}

// ListByOwner returns all of the owner's listings regardless of status,
// newest first.
func (s *ListingService) ListByOwner(ownerID uint) ([]model.Property, error) {
	return s.properties.ListByOwner(ownerID)
}

// UpdateStatus flips a listing between Available and Unavailable. Only the
// owner may change it.
func (s *ListingService) UpdateStatus(propertyID, ownerID uint, status string) (*model.Property, error) {
	if !model.ValidStatus(status) {
		return nil, ErrValidation
	}
	p, err := s.ownedProperty(propertyID, ownerID)
	if err != nil {
		return nil, err
	}
	p.Status = status
	if err := s.properties.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update to an owned listing. Absent fields are
// left unchanged; enum and price fields are re-validated when present.
func (s *ListingService) Update(propertyID, ownerID uint, in ListingUpdate) (*model.Property, error) {
	p, err := s.ownedProperty(propertyID, ownerID)
	if err != nil {
		return nil, err
	}

	if in.CarParking != nil && !model.ValidCarParking(*in.CarParking) {
		return nil, ErrValidation
	}
	if in.Pets != nil && !model.ValidPets(*in.Pets) {
		return nil, ErrValidation
	}
	var rent *float64
	if in.RentPrice != nil {
		v, err := parseRentPrice(*in.RentPrice)
		if err != nil {
			return nil, err
		}
		rent = &v
	}

	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.MobileNumber != nil {
		p.MobileNumber = *in.MobileNumber
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.District != nil {
		p.District = *in.District
	}
	if in.PropertyType != nil {
		p.PropertyType = *in.PropertyType
	}
	if in.HouseType != nil {
		p.HouseType = *in.HouseType
	}
	if rent != nil {
		p.RentPrice = *rent
	}
	if in.CarParking != nil {
		p.CarParking = *in.CarParking
	}
	if in.Pets != nil {
		p.Pets = *in.Pets
	}
	if in.Facing != nil {
		p.Facing = *in.Facing
	}
	if in.Furnishing != nil {
		p.Furnishing = *in.Furnishing
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	if err := s.properties.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes an owned listing and its stored images.
func (s *ListingService) Delete(propertyID, ownerID uint) error {
	p, err := s.ownedProperty(propertyID, ownerID)
	if err != nil {
		return err
	}
	if err := s.properties.Delete(p.ID); err != nil {
		return err
	}
	// Best effort: the row is gone either way.
	for _, name := range p.Images {
		_ = s.images.Remove(name)
	}
	return nil
}

// GetContact returns the contact number on a listing. Any authenticated
// user may request it, not only the owner.
func (s *ListingService) GetContact(propertyID uint) (string, error) {
	p, err := s.properties.FindByID(propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return p.MobileNumber, nil
}

func (s *ListingService) ownedProperty(propertyID, ownerID uint) (*model.Property, error) {
	p, err := s.properties.FindByID(propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

func parseRentPrice(raw string) (float64, error) {
	rent, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || rent < 0 {
		return 0, ErrValidation
	}
	return rent, nil
}
