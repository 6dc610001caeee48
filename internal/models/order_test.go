package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusConfirmed, models.OrderStatusProcessing, true},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusPending, models.OrderStatusShipped, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusProcessing, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{models.OrderStatusPending, models.OrderStatus("returned"), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD000001", models.FormatOrderNumber(1))
	assert.Equal(t, "ORD004217", models.FormatOrderNumber(4217))
	assert.Equal(t, "ORD1234567", models.FormatOrderNumber(1234567))
}

func TestOrderItemFromCart(t *testing.T) {
	entry := &models.CartEntry{
		ProductID: uuid.New(),
		Name:      "Kurta",
		Price:     decimal.RequireFromString("649.50"),
		Quantity:  2,
		Size:      "M",
		Images:    []models.Image{{URL: "https://cdn.example.com/kurta.jpg"}},
	}

	item := models.OrderItemFromCart(entry)

	assert.Equal(t, entry.ProductID, item.ProductID)
	assert.Equal(t, "M", item.Size)
	assert.Equal(t, "https://cdn.example.com/kurta.jpg", item.Image)
	assert.Equal(t, "1299", item.LineTotal().String())
}
