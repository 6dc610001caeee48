package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-backend/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShippingHandler_CalculateRate(t *testing.T) {
	t.Run("Success - Public Lookup", func(t *testing.T) {
		// Arrange
		shippingService := mocks.NewShippingService(t)
		handler := handlers.NewShippingHandler(shippingService)

		shippingService.On("Calculate", mock.Anything, "560001").Return(&models.ShippingQuote{
			ZipCode: "560001", State: "Karnataka", StateCode: "KA", FinalCharge: decimal.NewFromInt(50),
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/shipping/rates/560001", nil,
			map[string]string{"zipCode": "560001"})
		recorder := httptest.NewRecorder()

		// Act
		handler.CalculateRate()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)

		var quote models.ShippingQuote
		decodeData(t, decodeResponse(t, recorder), &quote)
		assert.Equal(t, "KA", quote.StateCode)
		assert.True(t, decimal.NewFromInt(50).Equal(quote.FinalCharge))
	})

	t.Run("Failure - Unserviceable Zip", func(t *testing.T) {
		// Arrange
		shippingService := mocks.NewShippingService(t)
		handler := handlers.NewShippingHandler(shippingService)

		shippingService.On("Calculate", mock.Anything, "999999").
			Return(nil, appErrors.NotFoundError("No shipping rule for zip code")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/shipping/rates/999999", nil,
			map[string]string{"zipCode": "999999"})
		recorder := httptest.NewRecorder()

		// Act
		handler.CalculateRate()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestShippingHandler_CreateRule(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		shippingService := mocks.NewShippingService(t)
		handler := handlers.NewShippingHandler(shippingService)

		shippingService.On("CreateRule", mock.Anything, mock.MatchedBy(func(r *models.CreateShippingRuleRequest) bool {
			return r.ZipCode == "560001" && r.Charges.Equal(decimal.NewFromInt(50))
		})).Return(&models.ShippingRule{ID: uuid.New(), ZipCode: "560001"}, nil).Once()

		body := jsonBody(t, map[string]any{
			"zipCode": "560001", "state": "Karnataka", "stateCode": "KA", "gstCode": "29", "charges": "50",
		})
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/shipping/rules", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateRule()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("Failure - Non Numeric Zip", func(t *testing.T) {
		// Arrange
		handler := handlers.NewShippingHandler(mocks.NewShippingService(t))

		body := jsonBody(t, map[string]any{
			"zipCode": "56A001", "state": "Karnataka", "stateCode": "KA", "gstCode": "29", "charges": "50",
		})
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/shipping/rules", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateRule()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, recorder).Error.Code)
	})

	t.Run("Failure - Duplicate Zip", func(t *testing.T) {
		// Arrange
		shippingService := mocks.NewShippingService(t)
		handler := handlers.NewShippingHandler(shippingService)

		shippingService.On("CreateRule", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("A rule for this zip code already exists")).Once()

		body := jsonBody(t, map[string]any{
			"zipCode": "560001", "state": "Karnataka", "stateCode": "KA", "gstCode": "29", "charges": "50",
		})
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/shipping/rules", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateRule()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestShippingHandler_DeleteRulesByState(t *testing.T) {
	// Arrange
	shippingService := mocks.NewShippingService(t)
	handler := handlers.NewShippingHandler(shippingService)

	shippingService.On("DeleteRulesByState", mock.Anything, "KA").Return(3, nil).Once()

	req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/shipping/states/KA/rules", nil, uuid.New(),
		map[string]string{"stateCode": "KA"})
	recorder := httptest.NewRecorder()

	// Act
	handler.DeleteRulesByState()(recorder, req)

	// Assert
	require.Equal(t, http.StatusOK, recorder.Code)

	var result map[string]int
	decodeData(t, decodeResponse(t, recorder), &result)
	assert.Equal(t, 3, result["deleted"])
}

func TestShippingHandler_DeleteRule(t *testing.T) {
	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		handler := handlers.NewShippingHandler(mocks.NewShippingService(t))
		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/shipping/rules/xyz", nil, uuid.New(),
			map[string]string{"id": "xyz"})
		recorder := httptest.NewRecorder()

		// Act
		handler.DeleteRule()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
