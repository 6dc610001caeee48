package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

// InvoiceService issues invoices and renders them from the order's stored summary.
// Amounts are never recomputed: the invoice shows exactly what the customer was charged.
type InvoiceService interface {
	IssueInvoice(ctx context.Context, orderID uuid.UUID) (*models.InvoiceData, error)
	GetOrderInvoice(ctx context.Context, claims *models.Claims, orderID uuid.UUID) (*models.InvoiceData, error)
	VerifyInvoice(ctx context.Context, invoiceID string) (*models.InvoiceData, error)
}

type invoiceService struct {
	repo   repository.InvoiceRepository
	orders repository.OrderRepository
}

func NewInvoiceService(repo repository.InvoiceRepository, orders repository.OrderRepository) InvoiceService {
	return &invoiceService{repo: repo, orders: orders}
}

func (s *invoiceService) getOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// IssueInvoice is idempotent per order: a second call returns the invoice issued first.
func (s *invoiceService) IssueInvoice(ctx context.Context, orderID uuid.UUID) (*models.InvoiceData, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusCancelled {
		return nil, appErrors.ConflictError("Cancelled orders cannot be invoiced").WithDetail(order.OrderNumber)
	}

	now := time.Now()

	invoice, err := s.repo.IssueInvoice(ctx, &models.Invoice{
		InvoiceID:   models.NewInvoiceID(order.OrderNumber),
		OrderID:     order.ID,
		GeneratedAt: now,
		DueAt:       now.Add(models.InvoiceDueAfter),
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnknownOrder) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to issue invoice").WithError(err)
	}

	return models.NewInvoiceData(invoice, order, true), nil
}

// GetOrderInvoice returns the invoice to the order's owner or an admin. Other callers see it as missing.
func (s *invoiceService) GetOrderInvoice(ctx context.Context, claims *models.Claims, orderID uuid.UUID) (*models.InvoiceData, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, appErrors.NotFoundError("Order not found")
	}

	invoice, err := s.repo.GetInvoiceByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Invoice not issued yet").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch invoice").WithError(err)
	}

	return models.NewInvoiceData(invoice, order, true), nil
}

// VerifyInvoice backs the public lookup printed as a QR code. It omits line items.
func (s *invoiceService) VerifyInvoice(ctx context.Context, invoiceID string) (*models.InvoiceData, error) {
	invoiceID = strings.ToUpper(strings.TrimSpace(invoiceID))
	if invoiceID == "" {
		return nil, appErrors.BadRequestError("Invoice id is required")
	}

	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Invoice not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch invoice").WithError(err)
	}

	order, err := s.getOrder(ctx, invoice.OrderID)
	if err != nil {
		return nil, err
	}

	return models.NewInvoiceData(invoice, order, false), nil
}
