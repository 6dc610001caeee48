package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/pkg/stripe"
	"github.com/shopspring/decimal"
)

var minorUnits = decimal.NewFromInt(100)

type PaymentService interface {
	CreatePayment(ctx context.Context, claims *models.Claims, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error)
}

type paymentService struct {
	orderRepo    repository.OrderRepository
	stripeClient stripe.Client
	currency     string
}

func NewPaymentService(orderRepo repository.OrderRepository, stripeClient stripe.Client, currency string) PaymentService {
	return &paymentService{orderRepo: orderRepo, stripeClient: stripeClient, currency: currency}
}

// CreatePayment opens a Stripe payment intent for the total of a card order that the caller owns
// and that has not been paid yet.
func (s *paymentService) CreatePayment(ctx context.Context, claims *models.Claims, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	order, err := s.orderRepo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != claims.UserID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	if order.PaymentMethod != models.PaymentMethodCard {
		return nil, appErrors.BadRequestError("Order is not paid by card")
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, appErrors.ConflictError("Order payment is already " + string(order.PaymentStatus))
	}

	if order.Status == models.OrderStatusCancelled {
		return nil, appErrors.BadRequestError("Order has been cancelled")
	}

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, stripe.PaymentIntentInput{
		Amount:      order.Summary.Total.Mul(minorUnits).Round(0).IntPart(),
		Currency:    s.currency,
		Description: "Order " + order.OrderNumber,
		Metadata: map[string]string{
			"orderId":     order.ID.String(),
			"orderNumber": order.OrderNumber,
			"userId":      order.UserID.String(),
		},
	})
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	if err := s.orderRepo.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		return nil, appErrors.DatabaseError("Failed to record payment intent").WithError(err)
	}

	logger.Info("Payment intent created", slog.String("orderId", order.ID.String()), slog.String("paymentIntentId", intent.ID))

	return &models.PaymentResponse{
		OrderID:         order.ID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          order.Summary.Total,
		Currency:        s.currency,
	}, nil
}

// ProcessWebhook applies a verified Stripe event to the order's payment status. It never
// changes the order status. Unhandled event types are acknowledged and ignored.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripe.Event{}, appErrors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	var (
		status  models.PaymentStatus
		idField string
	)

	switch event.Type {
	case "payment_intent.succeeded":
		status, idField = models.PaymentStatusSucceeded, "id"
	case "payment_intent.payment_failed":
		status, idField = models.PaymentStatusFailed, "id"
	case "charge.refunded":
		status, idField = models.PaymentStatusRefunded, "payment_intent"
	default:
		logger.Debug("Ignoring webhook event", slog.String("type", string(event.Type)))
		return event, nil
	}

	if event.Data == nil {
		return event, appErrors.BadRequestError("Webhook event has no data")
	}

	intentID, ok := event.Data.Object[idField].(string)
	if !ok || intentID == "" {
		return event, appErrors.BadRequestError("Missing payment intent ID in webhook")
	}

	if err := s.orderRepo.UpdatePaymentStatusByIntent(ctx, intentID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return event, appErrors.NotFoundError("No order for payment intent").WithError(err)
		}

		return event, appErrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	logger.Info("Payment status updated", slog.String("paymentIntentId", intentID), slog.String("status", string(status)))

	return event, nil
}
