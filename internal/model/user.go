package model

import (
	"time"
)

// User represents a registered account. PasswordHash is nullable so that
// accounts created through alternate auth (phone-only flows) can exist
// without a password.
type User struct {
	ID           uint      `json:"user_id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	MobileNumber string    `json:"mobile_number" gorm:"type:varchar(15);not null"`
	PasswordHash *string   `json:"-" gorm:"type:varchar(200)"`
	ProfileImage *string   `json:"profile_image,omitempty" gorm:"type:varchar(200)"`
	CreatedAt    time.Time `json:"created_at"`

	Properties []Property `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account has a usable password hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
