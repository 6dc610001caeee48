package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: utils.NewValidator()}
}

// QuoteOrder godoc
//	@Summary		Price the current cart
//	@Description	Returns the subtotal, shipping, tax, coupon discount and total the order would have if placed now. Nothing is stored.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			quote	body		models.QuoteRequest		true	"Destination zip code and optional coupon"
//	@Success		200		{object}	models.OrderSummary
//	@Failure		400		{object}	response.ErrorResponse	"Empty cart or coupon cannot be applied"
//	@Failure		404		{object}	response.ErrorResponse	"No shipping rule or coupon not found"
//	@Security		BearerAuth
//	@Router			/orders/quote [post]
func (h *OrderHandler) QuoteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "quote order")
		if !ok {
			return
		}

		var req models.QuoteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		summary, err := h.orderService.Quote(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Info("Failed to quote order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// CreateOrder godoc
//	@Summary		Place an order
//	@Description	Places an order for the caller's cart. Prices, shipping, tax and discount are computed on the server. The cart is emptied afterwards.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CreateOrderRequest	true	"Shipping address, payment method and optional coupon"
//	@Success		201		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Validation error, empty cart or coupon cannot be applied"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"No shipping rule or coupon not found"
//	@Failure		409		{object}	response.ErrorResponse	"Insufficient stock or coupon usage limit reached"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "create order")
		if !ok {
			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.String()), slog.String("orderNumber", order.OrderNumber))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Returns the order to its owner or an admin.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get order")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims, id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListMyOrders godoc
//	@Summary	List the caller's orders
//	@Tags		Orders
//	@Produce	json
//	@Param		page		query		int	false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int	false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.Order}
//	@Security	BearerAuth
//	@Router		/orders [get]
func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "list orders")
		if !ok {
			return
		}

		page, pageSize := utils.ParsePagination(r)

		orders, total, err := h.orderService.ListUserOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ListOrders godoc
//	@Summary		List all orders
//	@Description	Admin listing with optional status and order number/customer search, plus per-status counts and totals.
//	@Tags			Orders
//	@Produce		json
//	@Param			status		query		string	false	"Order status"
//	@Param			search		query		string	false	"Order number, customer name or email"
//	@Param			page		query		int		false	"Page number (default: 1)"				minimum(1)
//	@Param			pageSize	query		int		false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.OrderListResponse
//	@Failure		400			{object}	response.ErrorResponse	"Invalid order status"
//	@Security		BearerAuth
//	@Router			/admin/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "admin list orders")
		if !ok {
			return
		}

		page, pageSize := utils.ParsePagination(r)
		query := r.URL.Query()

		result, err := h.orderService.ListOrders(r.Context(), models.OrderFilter{
			Status: models.OrderStatus(query.Get("status")),
			Search: query.Get("search"),
			Page:   page,
			Size:   pageSize,
		})
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// UpdateOrderStatus godoc
//	@Summary		Update order status
//	@Description	Moves the order forward along pending, confirmed, processing, shipped, delivered, or cancels it. Delivered and cancelled orders are final.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status and optional notes"
//	@Success		200		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Invalid status transition"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Failure		409		{object}	response.ErrorResponse	"Status changed by another request"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "update order status")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// DeleteOrder godoc
//	@Summary	Delete an order
//	@Tags		Orders
//	@Param		id	path	string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "delete order")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
			logger.Error("Failed to delete order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order deleted", slog.String("orderId", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
