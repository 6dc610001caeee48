package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponTypeFlat       CouponType = "flat"
	CouponTypePercentage CouponType = "percentage"
)

// CouponStatus is derived from the coupon and the current time. It is never stored.
type CouponStatus string

const (
	CouponStatusScheduled CouponStatus = "scheduled"
	CouponStatusActive    CouponStatus = "active"
	CouponStatusExpired   CouponStatus = "expired"
)

type Coupon struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Type       CouponType      `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	MinValue   decimal.Decimal `json:"minValue"`
	MaxValue   decimal.Decimal `json:"maxValue"`
	UsageLimit int             `json:"usageLimit"`
	UsedCount  int             `json:"usedCount"`
	StartDate  *time.Time      `json:"startDate,omitempty"`
	ExpiryDate *time.Time      `json:"expiryDate,omitempty"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CouponView pairs a coupon with its derived status for listings.
type CouponView struct {
	*Coupon
	Status CouponStatus `json:"status"`
}

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateCouponRequest struct {
	Code       string          `json:"code" validate:"required,min=3,max=32,alphanum"`
	Name       string          `json:"name" validate:"required,max=120"`
	Type       CouponType      `json:"type" validate:"required,oneof=flat percentage"`
	Amount     decimal.Decimal `json:"amount" validate:"required,gt=0"`
	MinValue   decimal.Decimal `json:"minValue" validate:"gte=0"`
	MaxValue   decimal.Decimal `json:"maxValue" validate:"required,gt=0"`
	UsageLimit int             `json:"usageLimit" validate:"required,gte=1"`
	StartDate  *time.Time      `json:"startDate,omitempty"`
	ExpiryDate *time.Time      `json:"expiryDate,omitempty"`
	IsActive   *bool           `json:"isActive,omitempty"`
}

// UpdateCouponRequest changes only the fields that are set. UsedCount is not writable.
type UpdateCouponRequest struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,max=120"`
	Type       *CouponType      `json:"type,omitempty" validate:"omitempty,oneof=flat percentage"`
	Amount     *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
	MinValue   *decimal.Decimal `json:"minValue,omitempty" validate:"omitempty,gte=0"`
	MaxValue   *decimal.Decimal `json:"maxValue,omitempty" validate:"omitempty,gt=0"`
	UsageLimit *int             `json:"usageLimit,omitempty" validate:"omitempty,gte=1"`
	StartDate  *time.Time       `json:"startDate,omitempty"`
	ExpiryDate *time.Time       `json:"expiryDate,omitempty"`
	IsActive   *bool            `json:"isActive,omitempty"`
}

type ApplyCouponRequest struct {
	Code        string          `json:"code" validate:"required,max=32"`
	OrderAmount decimal.Decimal `json:"orderAmount" validate:"required,gt=0"`
}

type ApplyCouponResponse struct {
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

type RecordCouponUsageRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type CouponFilter struct {
	Search string
	Type   CouponType
	Status CouponStatus
	Page   int
	Size   int
}

type CouponAnalytics struct {
	Total     int       `json:"total"`
	Active    int       `json:"active"`
	Scheduled int       `json:"scheduled"`
	Expired   int       `json:"expired"`
	TopUsed   []*Coupon `json:"topUsed"`
}
