package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCountry is applied to saved addresses submitted without a country.
const DefaultCountry = "IN"

// SavedAddress is an entry in a user's address book. At most one per user is the default.
type SavedAddress struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Address
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AddressRequest struct {
	FullName   string `json:"fullName" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,min=7,max=20"`
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,numeric,min=4,max=10"`
	Country    string `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	IsDefault  bool   `json:"isDefault"`
}

// ToAddress converts the request, filling in DefaultCountry.
func (r *AddressRequest) ToAddress() Address {
	country := r.Country
	if country == "" {
		country = DefaultCountry
	}

	return Address{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    country,
	}
}
