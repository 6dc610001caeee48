package service_test

import (
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected *AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

func newProduct(name string, price, original string, stock int) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		OriginalPrice: decimal.RequireFromString(original),
		Images:        []models.Image{{URL: "https://cdn.example.com/" + name + ".png"}},
		Category:      "apparel",
		Stock:         stock,
	}
}

func cartWith(t *testing.T, userID uuid.UUID, lines ...cartLine) *models.Cart {
	t.Helper()

	cart := models.NewCart(userID)
	added := time.Now().Add(-time.Hour)

	for i, line := range lines {
		_, err := cart.AddItem(line.product, line.quantity, line.size, "", added.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	return cart
}

type cartLine struct {
	product  *models.Product
	quantity int
	size     string
}
