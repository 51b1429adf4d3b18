package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/subhashree8125/rental-platform/internal/model"
)

// ListFilter narrows the public listing feed. All present filters are
// combined with AND; zero-valued fields are ignored.
type ListFilter struct {
	Cities        []string `json:"cities,omitempty"`
	Districts     []string `json:"districts,omitempty"`
	Areas         []string `json:"areas,omitempty"`
	PropertyTypes []string `json:"property_types,omitempty"`
	BHK           []string `json:"bhk,omitempty"`
	MinBudget     *float64 `json:"min_budget,omitempty"`
	MaxBudget     *float64 `json:"max_budget,omitempty"`
	CarParking    string   `json:"car_parking,omitempty"`
	Pets          string   `json:"pets,omitempty"`
	Facing        []string `json:"facing,omitempty"`
	Furnishing    []string `json:"furnishing,omitempty"`
}

// PropertyStore provides access to persisted property listings.
type PropertyStore struct {
	db *gorm.DB
}

// NewPropertyStore creates a PropertyStore backed by db.
func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// Create inserts a new listing.
func (s *PropertyStore) Create(p *model.Property) error {
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// FindByID returns the listing with the given id.
func (s *PropertyStore) FindByID(id uint) (*model.Property, error) {
	var p model.Property
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query property: %w", err)
	}
	return &p, nil
}

// List returns Available listings matching the filter, newest first.
func (s *PropertyStore) List(filter ListFilter) ([]model.Property, error) {
	query := s.db.Where("status = ?", model.StatusAvailable)

	if len(filter.Cities) > 0 {
		query = query.Where("city IN ?", filter.Cities)
	}
	if len(filter.Districts) > 0 {
		query = query.Where("district IN ?", filter.Districts)
	}
	if len(filter.Areas) > 0 {
		query = query.Where("area IN ?", filter.Areas)
	}
	if len(filter.PropertyTypes) > 0 {
		query = query.Where("property_type IN ?", filter.PropertyTypes)
	}
	if len(filter.BHK) > 0 {
		query = query.Where("house_type IN ?", filter.BHK)
	}
	if filter.MinBudget != nil {
		query = query.Where("rent_price >= ?", *filter.MinBudget)
	}
	if filter.MaxBudget != nil {
		query = query.Where("rent_price <= ?", *filter.MaxBudget)
	}
	if filter.CarParking != "" {
		query = query.Where("car_parking = ?", filter.CarParking)
	}
	if filter.Pets != "" {
		query = query.Where("pets = ?", filter.Pets)
	}
	if len(filter.Facing) > 0 {
		query = query.Where("facing IN ?", filter.Facing)
	}
	if len(filter.Furnishing) > 0 {
		query = query.Where("furnishing IN ?", filter.Furnishing)
	}

	var properties []model.Property
	if err := query.Order("id DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// ListByOwner returns every listing owned by ownerID regardless of status,
// newest first.
func (s *PropertyStore) ListByOwner(ownerID uint) ([]model.Property, error) {
	var properties []model.Property
	if err := s.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties by owner: %w", err)
	}
	return properties, nil
}

// Update persists changes to an existing listing.
func (s *PropertyStore) Update(p *model.Property) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// Delete hard-deletes a listing.
func (s *PropertyStore) Delete(id uint) error {
	result := s.db.Delete(&model.Property{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
