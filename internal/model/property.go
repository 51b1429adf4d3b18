package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Car parking options for a listing
const (
	ParkingAny          = "Any"
	ParkingAvailable    = "Available"
	ParkingNotAvailable = "NotAvailable"
)

// Pet policy options for a listing
const (
	PetsAny                = "Any"
	PetsAllowed            = "Allowed"
	PetsStrictlyNotAllowed = "StrictlyNotAllowed"
)

// Listing visibility states
const (
	StatusAvailable   = "Available"
	StatusUnavailable = "Unavailable"
)

// ValidCarParking reports whether v is an allowed car_parking value.
func ValidCarParking(v string) bool {
	return v == ParkingAny || v == ParkingAvailable || v == ParkingNotAvailable
}

// ValidPets reports whether v is an allowed pets value.
func ValidPets(v string) bool {
	return v == PetsAny || v == PetsAllowed || v == PetsStrictlyNotAllowed
}

// ValidStatus reports whether v is an allowed listing status.
func ValidStatus(v string) bool {
	return v == StatusAvailable || v == StatusUnavailable
}

// ImageList is an ordered list of uploaded image filenames, persisted as a
// comma-joined text column.
type ImageList []string

// Value implements driver.Valuer
func (l ImageList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Scan implements sql.Scanner
func (l *ImageList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported type for ImageList: %T", src)
	}
	if raw == "" {
		*l = nil
		return nil
	}
	*l = strings.Split(raw, ",")
	return nil
}

// GormDataType tells gorm which column type to use
func (ImageList) GormDataType() string {
	return "text"
}

// Property represents a rental listing owned by a user.
type Property struct {
	ID           uint      `json:"property_id" gorm:"primaryKey"`
	OwnerID      uint      `json:"owner_id" gorm:"not null;index"`
	FullName     string    `json:"full_name" gorm:"type:varchar(100);not null"`
	MobileNumber string    `json:"mobile_number" gorm:"type:varchar(15);not null"`
	Address      string    `json:"address" gorm:"type:text;not null"`
	City         string    `json:"city" gorm:"type:varchar(50)"`
	Area         string    `json:"area" gorm:"type:varchar(100)"`
	District     string    `json:"district" gorm:"type:varchar(50)"`
	PropertyType string    `json:"property_type" gorm:"type:varchar(50);not null"`
	HouseType    string    `json:"house_type" gorm:"type:varchar(50);not null"`
	RentPrice    float64   `json:"rent_price" gorm:"type:numeric(10,2);not null"`
	CarParking   string    `json:"car_parking" gorm:"type:varchar(20);not null"`
	Pets         string    `json:"pets" gorm:"type:varchar(30);not null"`
	Facing       string    `json:"facing" gorm:"type:varchar(50);not null"`
	Furnishing   string    `json:"furnishing" gorm:"type:varchar(50);not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Images       ImageList `json:"images" gorm:"type:text"`
	Status       string    `json:"status" gorm:"type:varchar(20);not null;default:'Available'"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}
