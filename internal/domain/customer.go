package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Customer is auto-created the first time a phone number appears on a
// booking. Such records start with zero points, a default password and
// SignedUp=false until the customer registers through the mobile app.
type Customer struct {
	ID           int64          `json:"id"`
	FullName     string         `json:"full_name"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-"`
	Addresses    datatypes.JSON `json:"addresses,omitempty"`
	Points       int64          `json:"points"`
	SignedUp     bool           `json:"signed_up"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerAddress is one entry of the Addresses JSON list.
type CustomerAddress struct {
	Province string `json:"province"`
	District string `json:"district"`
	Address  string `json:"address"`
}
