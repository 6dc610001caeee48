package models_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceID(t *testing.T) {
	first := models.NewInvoiceID("ORD000007")
	second := models.NewInvoiceID("ORD000007")

	assert.Regexp(t, `^INV-ORD000007-[0-9A-F]{8}$`, first)
	assert.NotEqual(t, first, second)
}

func TestNewInvoiceData(t *testing.T) {
	now := time.Now()
	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     "ORD000007",
		Items:           []models.OrderItem{{Name: "Mug", Price: decimal.NewFromInt(250), Quantity: 1}},
		ShippingAddress: models.Address{FullName: "Ravi Kumar"},
		Summary:         models.OrderSummary{Total: decimal.RequireFromString("295.00")},
		CreatedAt:       now.Add(-time.Hour),
	}
	invoice := &models.Invoice{InvoiceID: "INV-ORD000007-0A0B0C0D", OrderID: order.ID, GeneratedAt: now, DueAt: now.Add(models.InvoiceDueAfter)}

	t.Run("With Items", func(t *testing.T) {
		data := models.NewInvoiceData(invoice, order, true)

		assert.Equal(t, "Ravi Kumar", data.Customer)
		assert.True(t, data.Amount.Equal(order.Summary.Total))
		assert.Equal(t, order.CreatedAt, data.OrderDate)
		assert.Len(t, data.Items, 1)
	})

	t.Run("Without Items", func(t *testing.T) {
		data := models.NewInvoiceData(invoice, order, false)

		assert.Nil(t, data.Items)
		assert.Equal(t, invoice.DueAt, data.DueDate)
	})
}

func TestAddressRequest_ToAddress(t *testing.T) {
	req := models.AddressRequest{FullName: "Asha Rao", PostalCode: "560001"}

	assert.Equal(t, models.DefaultCountry, req.ToAddress().Country)

	req.Country = "US"
	assert.Equal(t, "US", req.ToAddress().Country)
}
