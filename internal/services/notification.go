package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/pkg/sendgrid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

type notificationService struct {
	emailService sendgrid.EmailService
}

func NewNotificationService(emailService sendgrid.EmailService) NotificationService {
	return &notificationService{emailService: emailService}
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	logger := middleware.LoggerFromContext(ctx)

	msg := &sendgrid.Message{
		To:       to,
		ToName:   order.ShippingAddress.FullName,
		Subject:  fmt.Sprintf("Your order %s has been placed", order.OrderNumber),
		Text:     orderConfirmationText(order),
		HTML:     orderConfirmationHTML(order),
		Category: "order-confirmation",
		Args:     map[string]string{"order_number": order.OrderNumber},
	}

	if err := n.emailService.Send(ctx, msg); err != nil {
		return appErrors.ThirdPartyError("Failed to send order confirmation").WithError(err)
	}

	logger.Info("Order confirmation sent", slog.String("orderNumber", order.OrderNumber))

	return nil
}

func orderConfirmationText(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", order.OrderNumber)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s  %s\n", item.Quantity, item.Name, item.LineTotal().StringFixed(2))
	}

	summary := order.Summary
	fmt.Fprintf(&b, "\nSubtotal: %s\n", summary.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: %s\n", summary.ShippingCharge.StringFixed(2))
	fmt.Fprintf(&b, "Tax: %s\n", summary.Tax.StringFixed(2))

	if summary.CouponDiscount.IsPositive() {
		fmt.Fprintf(&b, "Coupon %s: -%s\n", summary.CouponCode, summary.CouponDiscount.StringFixed(2))
	}

	fmt.Fprintf(&b, "Total: %s\n", summary.Total.StringFixed(2))
	fmt.Fprintf(&b, "\nEstimated delivery: %s\n", order.EstimatedDelivery.Format("02 Jan 2006"))

	return b.String()
}

func orderConfirmationHTML(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Thank you for your order %s</h2><ul>", order.OrderNumber)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d &times; %s: %s</li>", item.Quantity, item.Name, item.LineTotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "</ul><p><strong>Total: %s</strong></p>", order.Summary.Total.StringFixed(2))

	return b.String()
}
