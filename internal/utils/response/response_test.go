package response_test

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	// Arrange
	rr := httptest.NewRecorder()

	// Act
	response.Success(rr, http.StatusCreated, map[string]string{"orderNumber": "ORD000001"})

	// Assert
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success": true, "data": {"orderNumber": "ORD000001"}}`, rr.Body.String())
}

func TestError(t *testing.T) {
	t.Run("AppError with detail", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, errors.TooManyRequestsError("Too many coupon attempts").WithDetail("retry after 12s"))

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.JSONEq(t, `{"success": false, "error": {"code": "TOO_MANY_REQUESTS", "message": "Too many coupon attempts", "details": ["retry after 12s"]}}`, rr.Body.String())
	})

	t.Run("Plain error is internal", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, stdErrors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, errors.ErrCodeInternal, resp.Error.Code)
	})
}

func TestValidationError(t *testing.T) {
	// Arrange
	type payload struct {
		Code     string `validate:"required"`
		Quantity int    `validate:"gte=1"`
		Type     string `validate:"oneof=flat percentage"`
	}

	err := validator.New().Struct(payload{Quantity: 0, Type: "bogus"})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	rr := httptest.NewRecorder()

	// Act
	response.ValidationError(rr, validationErrs)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeValidation, resp.Error.Code)
	assert.ElementsMatch(t, []string{
		"Field Code is required",
		"Field Quantity must be greater than or equal to 1",
		"Field Type must be one of [flat percentage]",
	}, resp.Error.Details)
}
