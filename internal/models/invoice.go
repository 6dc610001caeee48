package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDueAfter is the payment window printed on an invoice.
const InvoiceDueAfter = 30 * 24 * time.Hour

// Invoice is the issued record for an order. An order has at most one.
type Invoice struct {
	InvoiceID   string    `json:"invoiceId"`
	OrderID     uuid.UUID `json:"orderId"`
	GeneratedAt time.Time `json:"generatedAt"`
	DueAt       time.Time `json:"dueAt"`
}

// NewInvoiceID returns INV-<order number>-<8 uppercase hex chars>.
func NewInvoiceID(orderNumber string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("INV-%s-%s", orderNumber, strings.ToUpper(suffix))
}

// InvoiceData is the printable view of an invoice, read from the order's stored summary.
type InvoiceData struct {
	InvoiceID     string          `json:"invoiceId"`
	OrderID       uuid.UUID       `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	Customer      string          `json:"customer"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	OrderDate     time.Time       `json:"orderDate"`
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `json:"dueDate"`
	Items         []OrderItem     `json:"items,omitempty"`
	Summary       OrderSummary    `json:"summary"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewInvoiceData joins an invoice with its order. Items are only included when withItems is set.
func NewInvoiceData(invoice *Invoice, order *Order, withItems bool) *InvoiceData {
	data := &InvoiceData{
		InvoiceID:     invoice.InvoiceID,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Customer:      order.ShippingAddress.FullName,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		OrderDate:     order.CreatedAt,
		Date:          invoice.GeneratedAt,
		DueDate:       invoice.DueAt,
		Summary:       order.Summary,
		Amount:        order.Summary.Total,
	}

	if withItems {
		data.Items = order.Items
	}

	return data
}
