package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// OrderPricing carries the configured tax rate and delivery estimate.
type OrderPricing struct {
	TaxRate      decimal.Decimal
	DeliveryDays int
}

type OrderService interface {
	Quote(ctx context.Context, userID uuid.UUID, req *models.QuoteRequest) (*models.OrderSummary, error)
	CreateOrder(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orderRepo     repository.OrderRepository
	carts         CartService
	shipping      ShippingService
	coupons       CouponService
	notifications NotificationService
	pricing       OrderPricing
}

func NewOrderService(orderRepo repository.OrderRepository, carts CartService, shipping ShippingService,
	coupons CouponService, notifications NotificationService, cfg OrderPricing,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		carts:         carts,
		shipping:      shipping,
		coupons:       coupons,
		notifications: notifications,
		pricing:       cfg,
	}
}

type checkout struct {
	items   []models.OrderItem
	summary *models.OrderSummary
	coupon  *models.Coupon
}

// assemble prices the caller's reconciled cart. Item prices always come from the live products.
func (s *orderService) assemble(ctx context.Context, userID uuid.UUID, zipCode, couponCode string) (*checkout, error) {
	cart, err := s.carts.ReconciledCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.BadRequestError("Cart is empty").WithError(pricing.ErrEmptyOrder)
	}

	lines := cart.Lines()
	items := make([]models.OrderItem, len(lines))

	for i, line := range lines {
		items[i] = models.OrderItemFromCart(line)
	}

	shippingQuote, err := s.shipping.Calculate(ctx, zipCode)
	if err != nil {
		return nil, err
	}

	result := &checkout{items: items}

	var couponQuote *pricing.Quote

	if couponCode != "" {
		couponQuote, result.coupon, err = s.coupons.ValidateCoupon(ctx, couponCode, pricing.Subtotal(items))
		if err != nil {
			return nil, err
		}
	}

	result.summary, err = pricing.Assemble(items, shippingQuote.FinalCharge, s.pricing.TaxRate, couponQuote)
	if err != nil {
		return nil, appErrors.ValidationError("Order total cannot be computed").WithDetail(err.Error()).WithError(err)
	}

	return result, nil
}

func (s *orderService) Quote(ctx context.Context, userID uuid.UUID, req *models.QuoteRequest) (*models.OrderSummary, error) {
	result, err := s.assemble(ctx, userID, req.ZipCode, req.CouponCode)
	if err != nil {
		return nil, err
	}

	return result.summary, nil
}

// CreateOrder places the order for the caller's cart in one transaction with the stock
// reservation and coupon redemption. Clearing the cart and the confirmation email happen
// after commit and never fail the order.
func (s *orderService) CreateOrder(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	address := sanitizeAddress(req.ShippingAddress)

	result, err := s.assemble(ctx, claims.UserID, address.PostalCode, req.CouponCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	order := &models.Order{
		ID:                uuid.New(),
		UserID:            claims.UserID,
		Items:             result.items,
		ShippingAddress:   address,
		PaymentMethod:     req.PaymentMethod,
		Summary:           *result.summary,
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		EstimatedDelivery: now.AddDate(0, 0, s.pricing.DeliveryDays),
	}

	var couponID *uuid.UUID
	if result.coupon != nil {
		couponID = &result.coupon.ID
	}

	placement, err := s.orderRepo.PlaceOrder(ctx, order, couponID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, appErrors.ConflictError("Insufficient stock").WithDetail(err.Error()).WithError(err)
		case errors.Is(err, repository.ErrCouponExhausted):
			return nil, appErrors.ConflictError("Coupon usage limit reached").WithError(err)
		default:
			return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
		}
	}

	if placement.CouponError != nil {
		metrics.RecordCouponRedemptionFailure()
		logger.Error("Order placed but coupon redemption was not recorded",
			slog.String("orderId", order.ID.String()),
			slog.String("couponCode", order.Summary.CouponCode),
			slog.Any("error", placement.CouponError))
	}

	metrics.RecordOrderCreated(string(order.PaymentMethod))
	logger.Info("Order created",
		slog.String("orderId", order.ID.String()),
		slog.String("orderNumber", order.OrderNumber),
		slog.String("total", order.Summary.Total.StringFixed(2)))

	if err := s.carts.ClearCart(ctx, claims.UserID); err != nil {
		logger.Warn("Failed to clear cart after order", slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	if claims.Email != "" {
		s.sendConfirmation(ctx, claims.Email, order)
	}

	return order, nil
}

func (s *orderService) sendConfirmation(ctx context.Context, to string, order *models.Order) {
	logger := middleware.LoggerFromContext(ctx)
	ctx = context.WithoutCancel(ctx)
	snapshot := *order

	go func() {
		if err := s.notifications.SendOrderConfirmation(ctx, to, &snapshot); err != nil {
			logger.Warn("Failed to send order confirmation", slog.String("orderId", snapshot.ID.String()), slog.Any("error", err))
		}
	}()
}

func sanitizeAddress(a models.Address) models.Address {
	return models.Address{
		FullName:   utils.Sanitize(a.FullName),
		Phone:      utils.Sanitize(a.Phone),
		Street:     utils.Sanitize(a.Street),
		City:       utils.Sanitize(a.City),
		State:      utils.Sanitize(a.State),
		PostalCode: utils.Sanitize(a.PostalCode),
		Country:    utils.Sanitize(a.Country),
	}
}

func (s *orderService) getOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// GetOrder returns the order to its owner or an admin. Other callers see it as missing.
func (s *orderService) GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.ValidationError("Invalid order status").WithDetail(string(filter.Status))
	}

	filter.Search = utils.Sanitize(filter.Search)

	orders, total, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	stats, err := s.orderRepo.OrderStats(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch order statistics").WithError(err)
	}

	return &models.OrderListResponse{
		Orders: orders,
		Total:  total,
		Page:   filter.Page,
		Size:   filter.Size,
		Stats:  stats,
	}, nil
}

// UpdateOrderStatus moves the order forward along its lifecycle. The write only succeeds if
// nobody changed the status since it was read.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if !from.CanTransitionTo(req.Status) {
		return nil, appErrors.ValidationError("Invalid status transition").
			WithDetail(fmt.Sprintf("cannot move order from %s to %s", from, req.Status)).
			WithError(ErrInvalidStatusTransition)
	}

	order.Status = req.Status

	if notes := utils.Sanitize(req.Notes); notes != "" {
		order.Notes = notes
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, order, from); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, appErrors.ConflictError("Order status was changed by another request").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	logger.Info("Order status updated",
		slog.String("orderId", id.String()),
		slog.String("from", string(from)),
		slog.String("to", string(order.Status)))

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Order not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete order").WithError(err)
	}

	return nil
}
