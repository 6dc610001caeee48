package pricing

import (
	"errors"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrNegativeCharge  = errors.New("shipping charge cannot be negative")
	ErrInvalidDiscount = errors.New("discount must be between zero and the subtotal")
	ErrNegativeTotal   = errors.New("order total cannot be negative")
	ErrInvalidTaxRate  = errors.New("tax rate cannot be negative")
)

var DefaultTaxRate = decimal.RequireFromString("0.18")

const taxDecimalPlaces = 2

// ParseTaxRate reads a configured rate such as "0.18".
func ParseTaxRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return DefaultTaxRate, nil
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}

	if rate.IsNegative() {
		return decimal.Zero, ErrInvalidTaxRate
	}

	return rate, nil
}

func Subtotal(items []models.OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return subtotal
}

// Tax is subtotal*rate rounded half away from zero to two places.
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Round(taxDecimalPlaces)
}

// Assemble builds the authoritative summary for items. coupon may be nil; when set its
// discount must have been computed against the same subtotal.
func Assemble(items []models.OrderItem, shippingCharge, taxRate decimal.Decimal, coupon *Quote) (*models.OrderSummary, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	if shippingCharge.IsNegative() {
		return nil, ErrNegativeCharge
	}

	if taxRate.IsNegative() {
		return nil, ErrInvalidTaxRate
	}

	subtotal := Subtotal(items)

	summary := &models.OrderSummary{
		Subtotal:       subtotal,
		ShippingCharge: shippingCharge,
		Tax:            Tax(subtotal, taxRate),
		CouponDiscount: decimal.Zero,
	}

	if coupon != nil {
		if coupon.Discount.IsNegative() || coupon.Discount.GreaterThan(subtotal) {
			return nil, ErrInvalidDiscount
		}

		summary.CouponDiscount = coupon.Discount
		summary.CouponCode = coupon.Code
	}

	summary.Total = subtotal.Add(summary.ShippingCharge).Add(summary.Tax).Sub(summary.CouponDiscount)
	if summary.Total.IsNegative() {
		return nil, ErrNegativeTotal
	}

	return summary, nil
}
