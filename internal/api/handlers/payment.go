package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// Stripe recommends rejecting webhook bodies above this size.
const maxWebhookBytes = 65536

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: utils.NewValidator()}
}

// CreatePayment godoc
//	@Summary		Start a card payment
//	@Description	Creates a Stripe payment intent for the total of a pending card order and returns its client secret.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.CreatePaymentRequest	true	"Order to pay"
//	@Success		201		{object}	models.PaymentResponse
//	@Failure		400		{object}	response.ErrorResponse	"Order is not payable by card"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Failure		409		{object}	response.ErrorResponse	"Order already paid"
//	@Failure		500		{object}	response.ErrorResponse	"Payment provider error"
//	@Security		BearerAuth
//	@Router			/payments [post]
func (h *PaymentHandler) CreatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "create payment")
		if !ok {
			return
		}

		var req models.CreatePaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		payment, err := h.paymentService.CreatePayment(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to initiate payment", slog.String("orderId", req.OrderID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment initiated",
			slog.String("orderId", payment.OrderID.String()),
			slog.String("paymentIntentId", payment.PaymentIntentID))
		response.Success(w, http.StatusCreated, payment)
	}
}

// HandleStripeWebhook godoc
//	@Summary		Stripe webhook
//	@Description	Receives Stripe events. The Stripe-Signature header is verified before anything is applied.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Stripe signature"
//	@Success		200					{object}	map[string]bool
//	@Failure		400					{object}	response.ErrorResponse	"Invalid signature or payload"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.Any("error", err))
			response.Error(w, errors.BadRequestError("Failed to read request body").WithError(err))
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe signature is required"))
			return
		}

		event, err := h.paymentService.ProcessWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process payment webhook", slog.String("eventId", event.ID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment webhook processed", slog.String("eventId", event.ID), slog.String("type", string(event.Type)))
		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
