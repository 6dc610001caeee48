package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type InvoiceRepository interface {
	IssueInvoice(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
	GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error)
}

type invoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepo(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{DB: db}
}

const invoiceColumns = `invoice_id, order_id, generated_at, due_at`

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	invoice := &models.Invoice{}

	if err := row.Scan(&invoice.InvoiceID, &invoice.OrderID, &invoice.GeneratedAt, &invoice.DueAt); err != nil {
		return nil, err
	}

	return invoice, nil
}

// IssueInvoice stores the invoice unless the order already has one, and returns the stored row.
// Issuing twice for the same order yields the first invoice.
func (r *invoiceRepository) IssueInvoice(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	insert := `
		INSERT INTO invoices (invoice_id, order_id, generated_at, due_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id) DO NOTHING`

	if _, err := r.DB.ExecContext(dbCtx, insert, invoice.InvoiceID, invoice.OrderID, invoice.GeneratedAt, invoice.DueAt); err != nil {
		if _, ok := violatedForeignKey(err); ok {
			return nil, ErrUnknownOrder
		}

		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`

	stored, err := scanInvoice(r.DB.QueryRowContext(dbCtx, query, invoice.OrderID))
	if err != nil {
		return nil, fmt.Errorf("failed to read issued invoice: %w", err)
	}

	return stored, nil
}

func (r *invoiceRepository) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1`

	invoice, err := scanInvoice(r.DB.QueryRowContext(dbCtx, query, invoiceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

func (r *invoiceRepository) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`

	invoice, err := scanInvoice(r.DB.QueryRowContext(dbCtx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}
