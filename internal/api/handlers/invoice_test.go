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

func TestInvoiceHandler_IssueInvoice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		invoiceService := mocks.NewInvoiceService(t)
		handler := handlers.NewInvoiceHandler(invoiceService)
		orderID := uuid.New()

		invoiceService.On("IssueInvoice", mock.Anything, orderID).Return(&models.InvoiceData{
			InvoiceID: "INV-ORD000042-1A2B3C4D", OrderID: orderID, Amount: decimal.RequireFromString("1130"),
		}, nil).Once()

		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/admin/orders/"+orderID.String()+"/invoice",
			nil, uuid.New(), map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.IssueInvoice()(recorder, req)

		// Assert
		require.Equal(t, http.StatusCreated, recorder.Code)

		var data models.InvoiceData
		decodeData(t, decodeResponse(t, recorder), &data)
		assert.Equal(t, "INV-ORD000042-1A2B3C4D", data.InvoiceID)
		assert.True(t, data.Amount.Equal(decimal.RequireFromString("1130")))
	})

	t.Run("Failure - Cancelled Order", func(t *testing.T) {
		// Arrange
		invoiceService := mocks.NewInvoiceService(t)
		handler := handlers.NewInvoiceHandler(invoiceService)
		orderID := uuid.New()

		invoiceService.On("IssueInvoice", mock.Anything, orderID).
			Return(nil, appErrors.ConflictError("Cancelled orders cannot be invoiced")).Once()

		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/admin/orders/"+orderID.String()+"/invoice",
			nil, uuid.New(), map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.IssueInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestInvoiceHandler_GetOrderInvoice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		invoiceService := mocks.NewInvoiceService(t)
		handler := handlers.NewInvoiceHandler(invoiceService)
		userID, orderID := uuid.New(), uuid.New()

		invoiceService.On("GetOrderInvoice", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool {
			return c.UserID == userID
		}), orderID).Return(&models.InvoiceData{InvoiceID: "INV-ORD000042-1A2B3C4D", OrderID: orderID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/invoice",
			nil, userID, map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.GetOrderInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		handler := handlers.NewInvoiceHandler(mocks.NewInvoiceService(t))
		orderID := uuid.New()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/invoice",
			nil, map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.GetOrderInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestInvoiceHandler_VerifyInvoice(t *testing.T) {
	t.Run("Success - Public", func(t *testing.T) {
		// Arrange
		invoiceService := mocks.NewInvoiceService(t)
		handler := handlers.NewInvoiceHandler(invoiceService)

		invoiceService.On("VerifyInvoice", mock.Anything, "INV-ORD000042-1A2B3C4D").
			Return(&models.InvoiceData{InvoiceID: "INV-ORD000042-1A2B3C4D", OrderNumber: "ORD000042"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/invoices/INV-ORD000042-1A2B3C4D",
			nil, map[string]string{"invoiceId": "INV-ORD000042-1A2B3C4D"})
		recorder := httptest.NewRecorder()

		// Act
		handler.VerifyInvoice()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)

		var data models.InvoiceData
		decodeData(t, decodeResponse(t, recorder), &data)
		assert.Equal(t, "ORD000042", data.OrderNumber)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		invoiceService := mocks.NewInvoiceService(t)
		handler := handlers.NewInvoiceHandler(invoiceService)

		invoiceService.On("VerifyInvoice", mock.Anything, "INV-NOPE").
			Return(nil, appErrors.NotFoundError("Invoice not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/invoices/INV-NOPE",
			nil, map[string]string{"invoiceId": "INV-NOPE"})
		recorder := httptest.NewRecorder()

		// Act
		handler.VerifyInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
