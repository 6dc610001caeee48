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

func deliveryAddress() map[string]any {
	return map[string]any{
		"fullName":   "Asha Rao",
		"phone":      "9876543210",
		"street":     "12 MG Road",
		"city":       "Bengaluru",
		"state":      "Karnataka",
		"postalCode": "560001",
		"country":    "IN",
	}
}

func TestOrderHandler_QuoteOrder(t *testing.T) {
	t.Run("Success - Returns Summary", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)
		userID := uuid.New()

		orderService.On("Quote", mock.Anything, userID, &models.QuoteRequest{ZipCode: "560001", CouponCode: "SAVE50"}).
			Return(&models.OrderSummary{
				Subtotal:       decimal.NewFromInt(1000),
				ShippingCharge: decimal.NewFromInt(50),
				Tax:            decimal.NewFromInt(180),
				CouponDiscount: decimal.NewFromInt(50),
				CouponCode:     "SAVE50",
				Total:          decimal.NewFromInt(1180),
			}, nil).Once()

		body := jsonBody(t, map[string]any{"zipCode": "560001", "couponCode": "SAVE50"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/quote", body, userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.QuoteOrder()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)

		var summary models.OrderSummary
		decodeData(t, decodeResponse(t, recorder), &summary)
		assert.True(t, decimal.NewFromInt(1180).Equal(summary.Total))
	})

	t.Run("Failure - Missing Zip", func(t *testing.T) {
		// Arrange
		handler := handlers.NewOrderHandler(mocks.NewOrderService(t))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/quote",
			jsonBody(t, map[string]any{}), uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.QuoteOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("Success - Order Placed", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)
		userID := uuid.New()

		orderService.On("CreateOrder", mock.Anything,
			mock.MatchedBy(func(c *models.Claims) bool { return c.UserID == userID }),
			mock.MatchedBy(func(r *models.CreateOrderRequest) bool {
				return r.PaymentMethod == models.PaymentMethodCOD && r.ShippingAddress.PostalCode == "560001"
			})).
			Return(&models.Order{ID: uuid.New(), OrderNumber: "ORD000001", UserID: userID}, nil).Once()

		body := jsonBody(t, map[string]any{"shippingAddress": deliveryAddress(), "paymentMethod": "cod"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", body, userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateOrder()(recorder, req)

		// Assert
		require.Equal(t, http.StatusCreated, recorder.Code)

		var order models.Order
		decodeData(t, decodeResponse(t, recorder), &order)
		assert.Equal(t, "ORD000001", order.OrderNumber)
	})

	t.Run("Failure - Unsupported Payment Method", func(t *testing.T) {
		// Arrange
		handler := handlers.NewOrderHandler(mocks.NewOrderService(t))

		body := jsonBody(t, map[string]any{"shippingAddress": deliveryAddress(), "paymentMethod": "upi"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Stock Ran Out", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		orderService.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, appErrors.ConflictError("Insufficient stock")).Once()

		body := jsonBody(t, map[string]any{"shippingAddress": deliveryAddress(), "paymentMethod": "card"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		handler := handlers.NewOrderHandler(mocks.NewOrderService(t))
		body := jsonBody(t, map[string]any{"shippingAddress": deliveryAddress(), "paymentMethod": "cod"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/orders", body, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)
		userID := uuid.New()
		orderID := uuid.New()

		orderService.On("GetOrder", mock.Anything, mock.Anything, orderID).
			Return(&models.Order{ID: orderID, UserID: userID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID,
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)
		orderID := uuid.New()

		orderService.On("GetOrder", mock.Anything, mock.Anything, orderID).
			Return(nil, appErrors.NotFoundError("Order not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, uuid.New(),
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestOrderHandler_ListMyOrders(t *testing.T) {
	// Arrange
	orderService := mocks.NewOrderService(t)
	handler := handlers.NewOrderHandler(orderService)
	userID := uuid.New()

	orderService.On("ListUserOrders", mock.Anything, userID, 1, 10).
		Return([]*models.Order{{ID: uuid.New(), UserID: userID}}, 1, nil).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders", nil, userID, nil)
	recorder := httptest.NewRecorder()

	// Act
	handler.ListMyOrders()(recorder, req)

	// Assert
	require.Equal(t, http.StatusOK, recorder.Code)

	var page models.PaginatedResponse
	decodeData(t, decodeResponse(t, recorder), &page)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 10, page.PageSize)
}

func TestOrderHandler_ListOrders(t *testing.T) {
	// Arrange
	orderService := mocks.NewOrderService(t)
	handler := handlers.NewOrderHandler(orderService)

	filter := models.OrderFilter{Status: models.OrderStatusShipped, Search: "ORD0001", Page: 1, Size: 20}
	orderService.On("ListOrders", mock.Anything, filter).Return(&models.OrderListResponse{
		Orders: []*models.Order{},
		Stats: map[models.OrderStatus]*models.StatusStat{
			models.OrderStatusShipped: {Count: 4, TotalValue: decimal.NewFromInt(4000)},
		},
	}, nil).Once()

	req := testutils.CreateAdminTestRequest(http.MethodGet, "/api/v1/admin/orders?status=shipped&search=ORD0001&pageSize=20",
		nil, uuid.New(), nil)
	recorder := httptest.NewRecorder()

	// Act
	handler.ListOrders()(recorder, req)

	// Assert
	require.Equal(t, http.StatusOK, recorder.Code)

	var result models.OrderListResponse
	decodeData(t, decodeResponse(t, recorder), &result)
	assert.Equal(t, 4, result.Stats[models.OrderStatusShipped].Count)
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)
		orderID := uuid.New()

		orderService.On("UpdateOrderStatus", mock.Anything, orderID,
			&models.UpdateOrderStatusRequest{Status: models.OrderStatusShipped, Notes: "AWB 1234"}).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusShipped}, nil).Once()

		req := testutils.CreateAdminTestRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status",
			jsonBody(t, map[string]string{"status": "shipped", "notes": "AWB 1234"}), uuid.New(),
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateOrderStatus()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Unknown Status", func(t *testing.T) {
		// Arrange
		handler := handlers.NewOrderHandler(mocks.NewOrderService(t))
		orderID := uuid.New()

		req := testutils.CreateAdminTestRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status",
			jsonBody(t, map[string]string{"status": "lost"}), uuid.New(),
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateOrderStatus()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, recorder).Error.Code)
	})

	t.Run("Failure - Concurrent Change", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)
		orderID := uuid.New()

		orderService.On("UpdateOrderStatus", mock.Anything, orderID, mock.Anything).
			Return(nil, appErrors.ConflictError("Order status changed, reload and retry")).Once()

		req := testutils.CreateAdminTestRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status",
			jsonBody(t, map[string]string{"status": "delivered"}), uuid.New(),
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateOrderStatus()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestOrderHandler_DeleteOrder(t *testing.T) {
	// Arrange
	orderService := mocks.NewOrderService(t)
	handler := handlers.NewOrderHandler(orderService)
	orderID := uuid.New()

	orderService.On("DeleteOrder", mock.Anything, orderID).Return(nil).Once()

	req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/orders/"+orderID.String(), nil, uuid.New(),
		map[string]string{"id": orderID.String()})
	recorder := httptest.NewRecorder()

	// Act
	handler.DeleteOrder()(recorder, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
