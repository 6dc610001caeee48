package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingRule maps a single zip code to its state and charge.
// PriceLessThan is kept for reference and does not affect the charge.
type ShippingRule struct {
	ID            uuid.UUID       `json:"id"`
	ZipCode       string          `json:"zipCode"`
	State         string          `json:"state"`
	StateCode     string          `json:"stateCode"`
	GSTCode       string          `json:"gstCode"`
	Charges       decimal.Decimal `json:"charges"`
	PriceLessThan decimal.Decimal `json:"priceLessThan"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CreateShippingRuleRequest struct {
	ZipCode       string          `json:"zipCode" validate:"required,numeric,min=4,max=10"`
	State         string          `json:"state" validate:"required,max=64"`
	StateCode     string          `json:"stateCode" validate:"required,max=8"`
	GSTCode       string          `json:"gstCode" validate:"required,max=8"`
	Charges       decimal.Decimal `json:"charges" validate:"gte=0"`
	PriceLessThan decimal.Decimal `json:"priceLessThan" validate:"gte=0"`
}

type ShippingQuote struct {
	ZipCode     string          `json:"zipCode"`
	State       string          `json:"state"`
	StateCode   string          `json:"stateCode"`
	GSTCode     string          `json:"gstCode"`
	FinalCharge decimal.Decimal `json:"finalCharge"`
}

func (r *ShippingRule) Quote() *ShippingQuote {
	return &ShippingQuote{
		ZipCode:     r.ZipCode,
		State:       r.State,
		StateCode:   r.StateCode,
		GSTCode:     r.GSTCode,
		FinalCharge: r.Charges,
	}
}
