// Package pricing holds the money rules of checkout: coupon eligibility and discounts,
// tax, and the assembly of an order summary. Everything here is pure; callers pass the
// current time explicitly.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponInactive      = fmt.Errorf("%w: coupon is inactive", ErrCouponNotFound)
	ErrCouponNotStarted    = errors.New("coupon is not active yet")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponLimitExceeded = errors.New("coupon usage limit reached")
	ErrBelowMinimum        = errors.New("order amount is below the coupon minimum")
	ErrAboveMaximum        = errors.New("order amount is above the coupon maximum")
	ErrInvalidCouponType   = errors.New("unsupported coupon type")
	ErrInvalidOrderAmount  = errors.New("order amount must be greater than zero")
)

var hundred = decimal.NewFromInt(100)

// Quote is the outcome of a successful coupon validation.
type Quote struct {
	Code        string
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal
}

// Eligibility is the single predicate behind both validation and status classification.
// It checks, in order: active flag, start date, expiry date, usage limit.
func Eligibility(c *models.Coupon, now time.Time) error {
	if c == nil {
		return ErrCouponNotFound
	}

	if !c.IsActive {
		return ErrCouponInactive
	}

	if c.StartDate != nil && c.StartDate.After(now) {
		return ErrCouponNotStarted
	}

	if c.ExpiryDate != nil && c.ExpiryDate.Before(now) {
		return ErrCouponExpired
	}

	if c.UsedCount >= c.UsageLimit {
		return ErrCouponLimitExceeded
	}

	return nil
}

func Status(c *models.Coupon, now time.Time) models.CouponStatus {
	switch err := Eligibility(c, now); {
	case err == nil:
		return models.CouponStatusActive
	case errors.Is(err, ErrCouponNotStarted):
		return models.CouponStatusScheduled
	default:
		return models.CouponStatusExpired
	}
}

// Discount computes the raw discount for orderAmount, clamped to [0, orderAmount].
func Discount(c *models.Coupon, orderAmount decimal.Decimal) (decimal.Decimal, error) {
	var discount decimal.Decimal

	switch c.Type {
	case models.CouponTypeFlat:
		discount = decimal.Min(c.Amount, orderAmount)
	case models.CouponTypePercentage:
		discount = orderAmount.Mul(c.Amount).Div(hundred).Floor()
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCouponType, c.Type)
	}

	return clamp(discount, decimal.Zero, orderAmount), nil
}

// Validate checks c against orderAmount at now and returns the resulting quote.
// It never changes the coupon.
func Validate(c *models.Coupon, orderAmount decimal.Decimal, now time.Time) (*Quote, error) {
	if !orderAmount.IsPositive() {
		return nil, ErrInvalidOrderAmount
	}

	if err := Eligibility(c, now); err != nil {
		return nil, err
	}

	if orderAmount.LessThan(c.MinValue) {
		return nil, ErrBelowMinimum
	}

	if orderAmount.GreaterThan(c.MaxValue) {
		return nil, ErrAboveMaximum
	}

	discount, err := Discount(c, orderAmount)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Code:        c.Code,
		Discount:    discount,
		FinalAmount: orderAmount.Sub(discount),
	}, nil
}

// WithStatus pairs each coupon with its status and keeps those matching want.
// An empty want keeps everything.
func WithStatus(coupons []*models.Coupon, want models.CouponStatus, now time.Time) []*models.CouponView {
	views := make([]*models.CouponView, 0, len(coupons))

	for _, c := range coupons {
		status := Status(c, now)
		if want != "" && status != want {
			continue
		}

		views = append(views, &models.CouponView{Coupon: c, Status: status})
	}

	return views
}

// Analytics counts coupons per status and lists the topN most used.
func Analytics(coupons []*models.Coupon, now time.Time, topN int) *models.CouponAnalytics {
	analytics := &models.CouponAnalytics{Total: len(coupons), TopUsed: []*models.Coupon{}}

	for _, c := range coupons {
		switch Status(c, now) {
		case models.CouponStatusActive:
			analytics.Active++
		case models.CouponStatusScheduled:
			analytics.Scheduled++
		case models.CouponStatusExpired:
			analytics.Expired++
		}
	}

	ranked := make([]*models.Coupon, len(coupons))
	copy(ranked, coupons)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UsedCount > ranked[j].UsedCount
	})

	for _, c := range ranked {
		if len(analytics.TopUsed) == topN {
			break
		}

		if c.UsedCount > 0 {
			analytics.TopUsed = append(analytics.TopUsed, c)
		}
	}

	return analytics
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(v, hi))
}
