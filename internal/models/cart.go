package models

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartItemNotFound = errors.New("item not found in cart")
)

// CartKey identifies a cart line. Empty Size or Color means the variant is unset.
type CartKey struct {
	ProductID uuid.UUID
	Size      string
	Color     string
}

// NewCartKey is the only place variant values are normalized. Lines added to a cart and keys
// built from request query values both pass through it, so they compare equal.
func NewCartKey(productID uuid.UUID, size, color string) CartKey {
	return CartKey{
		ProductID: productID,
		Size:      utils.Sanitize(size),
		Color:     utils.Sanitize(color),
	}
}

func (k CartKey) HasVariant() bool {
	return k.Size != "" || k.Color != ""
}

// String renders the bare product id, or "<id>?color=..&size=.." when a variant is set.
func (k CartKey) String() string {
	if !k.HasVariant() {
		return k.ProductID.String()
	}

	values := url.Values{}

	if k.Color != "" {
		values.Set("color", k.Color)
	}

	if k.Size != "" {
		values.Set("size", k.Size)
	}

	return k.ProductID.String() + "?" + values.Encode()
}

func (k CartKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CartKey) UnmarshalText(text []byte) error {
	parsed, err := ParseCartKey(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

func ParseCartKey(s string) (CartKey, error) {
	idPart, query, _ := strings.Cut(s, "?")

	id, err := uuid.Parse(idPart)
	if err != nil {
		return CartKey{}, fmt.Errorf("invalid cart key %q: %w", s, err)
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return CartKey{}, fmt.Errorf("invalid cart key variant %q: %w", s, err)
	}

	return NewCartKey(id, values.Get("size"), values.Get("color")), nil
}

// CartEntry is one cart line. Name, prices, images, category and stock mirror the product.
type CartEntry struct {
	ProductID     uuid.UUID       `json:"productId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Images        []Image         `json:"images"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	Stock         int             `json:"stock"`
	InStock       bool            `json:"inStock"`
	AddedAt       time.Time       `json:"addedAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (e *CartEntry) Key() CartKey {
	return NewCartKey(e.ProductID, e.Size, e.Color)
}

func (e *CartEntry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// OriginalLineTotal falls back to the selling price when no original price is recorded.
func (e *CartEntry) OriginalLineTotal() decimal.Decimal {
	unit := e.OriginalPrice
	if !unit.IsPositive() {
		unit = e.Price
	}

	return unit.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func (e *CartEntry) refresh(p *Product) {
	e.Name = p.Name
	e.Price = p.Price
	e.OriginalPrice = p.OriginalPrice
	e.Images = p.Images
	e.Category = p.Category
	e.Stock = p.Stock
	e.InStock = p.InStock()
}

type Cart struct {
	UserID uuid.UUID              `json:"userId"`
	Items  map[CartKey]*CartEntry `json:"items"`
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID, Items: make(map[CartKey]*CartEntry)}
}

func (c *Cart) ensureItems() {
	if c.Items == nil {
		c.Items = make(map[CartKey]*CartEntry)
	}
}

// AddItem accumulates quantity on an existing line, or snapshots the product into a new one.
func (c *Cart) AddItem(p *Product, quantity int, size, color string, now time.Time) (CartKey, error) {
	if quantity < 1 {
		return CartKey{}, ErrInvalidQuantity
	}

	c.ensureItems()

	key := NewCartKey(p.ID, size, color)

	if entry, ok := c.Items[key]; ok {
		entry.Quantity += quantity
		entry.UpdatedAt = now

		return key, nil
	}

	entry := &CartEntry{
		ProductID: p.ID,
		Quantity:  quantity,
		Size:      key.Size,
		Color:     key.Color,
		AddedAt:   now,
		UpdatedAt: now,
	}
	entry.refresh(p)

	c.Items[key] = entry

	return key, nil
}

// UpdateQuantity sets the quantity of an existing line.
func (c *Cart) UpdateQuantity(key CartKey, quantity int, now time.Time) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	entry, ok := c.Items[key]
	if !ok {
		return ErrCartItemNotFound
	}

	entry.Quantity = quantity
	entry.UpdatedAt = now

	return nil
}

func (c *Cart) RemoveItem(key CartKey) error {
	if _, ok := c.Items[key]; !ok {
		return ErrCartItemNotFound
	}

	delete(c.Items, key)

	return nil
}

func (c *Cart) Clear() {
	c.Items = make(map[CartKey]*CartEntry)
}

// ProductIDs lists each referenced product once.
func (c *Cart) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c.Items))
	ids := make([]uuid.UUID, 0, len(c.Items))

	for key := range c.Items {
		if _, ok := seen[key.ProductID]; ok {
			continue
		}

		seen[key.ProductID] = struct{}{}
		ids = append(ids, key.ProductID)
	}

	return ids
}

// Reconcile refreshes every line from products and drops lines whose product is gone.
// Quantity, size, color and addedAt are never touched. It reports whether the number of lines changed.
func (c *Cart) Reconcile(products map[uuid.UUID]*Product) bool {
	before := len(c.Items)

	for key, entry := range c.Items {
		product, ok := products[key.ProductID]
		if !ok {
			delete(c.Items, key)
			continue
		}

		entry.refresh(product)
	}

	return len(c.Items) != before
}

// Lines returns the entries ordered by when they were added.
func (c *Cart) Lines() []*CartEntry {
	lines := make([]*CartEntry, 0, len(c.Items))
	for _, entry := range c.Items {
		lines = append(lines, entry)
	}

	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].AddedAt.Equal(lines[j].AddedAt) {
			return lines[i].AddedAt.Before(lines[j].AddedAt)
		}

		return lines[i].Key().String() < lines[j].Key().String()
	})

	return lines
}

type CartTotals struct {
	CartCount           int             `json:"cartCount"`
	TotalQuantity       int             `json:"totalQuantity"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	OriginalTotalAmount decimal.Decimal `json:"originalTotalAmount"`
	Savings             decimal.Decimal `json:"savings"`
}

func (c *Cart) Totals() CartTotals {
	totals := CartTotals{
		CartCount:           len(c.Items),
		TotalAmount:         decimal.Zero,
		OriginalTotalAmount: decimal.Zero,
	}

	for _, entry := range c.Items {
		totals.TotalQuantity += entry.Quantity
		totals.TotalAmount = totals.TotalAmount.Add(entry.LineTotal())
		totals.OriginalTotalAmount = totals.OriginalTotalAmount.Add(entry.OriginalLineTotal())
	}

	totals.Savings = totals.OriginalTotalAmount.Sub(totals.TotalAmount)

	return totals
}

// CartView is what the cart endpoints return.
type CartView struct {
	Items map[CartKey]*CartEntry `json:"cartData"`
	CartTotals
}

func NewCartView(c *Cart) *CartView {
	c.ensureItems()

	return &CartView{Items: c.Items, CartTotals: c.Totals()}
}

type CartSummary struct {
	CartCount     int  `json:"cartCount"`
	TotalQuantity int  `json:"totalQuantity"`
	HasItems      bool `json:"hasItems"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	Size      string    `json:"size,omitempty" validate:"max=32"`
	Color     string    `json:"color,omitempty" validate:"max=32"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
