package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentStatus string

type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"

	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodCard PaymentMethod = "card"
)

// OrderStatuses lists the statuses in fulfilment order, cancelled last.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var fulfilmentRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	_, ok := fulfilmentRank[s]
	return ok || s == OrderStatusCancelled
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo allows forward moves along the fulfilment chain, skipping steps if needed,
// and cancellation from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.Valid() {
		return false
	}

	if next == OrderStatusCancelled {
		return true
	}

	from, ok := fulfilmentRank[s]
	if !ok {
		return false
	}

	return fulfilmentRank[next] > from
}

// OrderItem is a snapshot of a cart line at checkout.
type OrderItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Image     string          `json:"image,omitempty"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func OrderItemFromCart(e *CartEntry) OrderItem {
	item := OrderItem{
		ProductID: e.ProductID,
		Name:      e.Name,
		Price:     e.Price,
		Quantity:  e.Quantity,
		Size:      e.Size,
		Color:     e.Color,
	}

	if len(e.Images) > 0 {
		item.Image = e.Images[0].URL
	}

	return item
}

type Address struct {
	FullName   string `json:"fullName" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,min=7,max=20"`
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,numeric,min=4,max=10"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

type OrderSummary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCharge decimal.Decimal `json:"shippingCharge"`
	Tax            decimal.Decimal `json:"tax"`
	CouponDiscount decimal.Decimal `json:"couponDiscount"`
	CouponCode     string          `json:"couponCode,omitempty"`
	Total          decimal.Decimal `json:"total"`
}

type Order struct {
	ID                uuid.UUID     `json:"id"`
	OrderNumber       string        `json:"orderNumber"`
	UserID            uuid.UUID     `json:"userId"`
	Items             []OrderItem   `json:"items"`
	ShippingAddress   Address       `json:"shippingAddress"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	Summary           OrderSummary  `json:"summary"`
	Status            OrderStatus   `json:"status"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	PaymentIntentID   string        `json:"paymentIntentId,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	EstimatedDelivery time.Time     `json:"estimatedDelivery"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD%06d", seq)
}

type CreateOrderRequest struct {
	ShippingAddress Address       `json:"shippingAddress" validate:"required"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof=cod card"`
	CouponCode      string        `json:"couponCode,omitempty" validate:"omitempty,max=32"`
}

type QuoteRequest struct {
	ZipCode    string `json:"zipCode" validate:"required,numeric,min=4,max=10"`
	CouponCode string `json:"couponCode,omitempty" validate:"omitempty,max=32"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	Notes  string      `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type OrderFilter struct {
	Status OrderStatus
	Search string
	Page   int
	Size   int
}

type StatusStat struct {
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type OrderListResponse struct {
	Orders []*Order                    `json:"orders"`
	Total  int                         `json:"total"`
	Page   int                         `json:"page"`
	Size   int                         `json:"size"`
	Stats  map[OrderStatus]*StatusStat `json:"stats"`
}
