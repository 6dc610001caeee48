package pricing

import (
	"errors"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
)

var (
	ErrInvalidBounds     = errors.New("minValue must be less than maxValue")
	ErrInvalidWindow     = errors.New("startDate must be before expiryDate")
	ErrPercentageTooHigh = errors.New("percentage amount cannot exceed 100")
)

// CheckRules reports the first invariant a coupon definition breaks.
func CheckRules(c *models.Coupon) error {
	if c.Type != models.CouponTypeFlat && c.Type != models.CouponTypePercentage {
		return ErrInvalidCouponType
	}

	if !c.MinValue.LessThan(c.MaxValue) {
		return ErrInvalidBounds
	}

	if c.StartDate != nil && c.ExpiryDate != nil && !c.StartDate.Before(*c.ExpiryDate) {
		return ErrInvalidWindow
	}

	if c.Type == models.CouponTypePercentage && c.Amount.GreaterThan(hundred) {
		return ErrPercentageTooHigh
	}

	return nil
}
