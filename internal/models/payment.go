package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type PaymentResponse struct {
	OrderID         uuid.UUID       `json:"orderId"`
	PaymentIntentID string          `json:"paymentIntentId"`
	ClientSecret    string          `json:"clientSecret"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}
