// Package mocks holds testify mocks of the repository interfaces in the layout mockery generates.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t cleanupT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	var r0 *models.User
	if v := args.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, args.Error(1)
}

func (m *UserRepository) ListUsers(ctx context.Context, page, size int) ([]*models.User, int, error) {
	args := m.Called(ctx, page, size)

	var r0 []*models.User
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.User)
	}

	return r0, args.Int(1), args.Error(2)
}

func (m *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t cleanupT) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartRepository) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	var r0 *models.Cart
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, args.Error(1)
}

func (m *CartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t cleanupT) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	var r0 *models.Product
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, args.Error(1)
}

func (m *ProductRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	args := m.Called(ctx, ids)

	var r0 map[uuid.UUID]*models.Product
	if v := args.Get(0); v != nil {
		r0 = v.(map[uuid.UUID]*models.Product)
	}

	return r0, args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, page, size int, category string) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, size, category)

	var r0 []*models.Product
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	return r0, args.Int(1), args.Error(2)
}

type CouponRepository struct {
	mock.Mock
}

func NewCouponRepository(t cleanupT) *CouponRepository {
	m := &CouponRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CouponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *CouponRepository) GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	args := m.Called(ctx, id)

	var r0 *models.Coupon
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Coupon)
	}

	return r0, args.Error(1)
}

func (m *CouponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)

	var r0 *models.Coupon
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Coupon)
	}

	return r0, args.Error(1)
}

func (m *CouponRepository) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *CouponRepository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CouponRepository) ListCoupons(ctx context.Context, search string, couponType models.CouponType) ([]*models.Coupon, error) {
	args := m.Called(ctx, search, couponType)

	var r0 []*models.Coupon
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.Coupon)
	}

	return r0, args.Error(1)
}

func (m *CouponRepository) RecordUsage(ctx context.Context, couponID, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, couponID, orderID)
	return args.Bool(0), args.Error(1)
}

type ShippingRepository struct {
	mock.Mock
}

func NewShippingRepository(t cleanupT) *ShippingRepository {
	m := &ShippingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ShippingRepository) CreateRule(ctx context.Context, rule *models.ShippingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *ShippingRepository) GetRuleByZip(ctx context.Context, zipCode string) (*models.ShippingRule, error) {
	args := m.Called(ctx, zipCode)

	var r0 *models.ShippingRule
	if v := args.Get(0); v != nil {
		r0 = v.(*models.ShippingRule)
	}

	return r0, args.Error(1)
}

func (m *ShippingRepository) GetRuleByID(ctx context.Context, id uuid.UUID) (*models.ShippingRule, error) {
	args := m.Called(ctx, id)

	var r0 *models.ShippingRule
	if v := args.Get(0); v != nil {
		r0 = v.(*models.ShippingRule)
	}

	return r0, args.Error(1)
}

func (m *ShippingRepository) ListRules(ctx context.Context) ([]*models.ShippingRule, error) {
	args := m.Called(ctx)

	var r0 []*models.ShippingRule
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.ShippingRule)
	}

	return r0, args.Error(1)
}

func (m *ShippingRepository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ShippingRepository) DeleteRulesByState(ctx context.Context, stateCode string) ([]string, error) {
	args := m.Called(ctx, stateCode)

	var r0 []string
	if v := args.Get(0); v != nil {
		r0 = v.([]string)
	}

	return r0, args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t cleanupT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *OrderRepository) PlaceOrder(ctx context.Context, order *models.Order, couponID *uuid.UUID) (*repository.OrderPlacement, error) {
	args := m.Called(ctx, order, couponID)

	var r0 *repository.OrderPlacement
	if v := args.Get(0); v != nil {
		r0 = v.(*repository.OrderPlacement)
	}

	return r0, args.Error(1)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)

	var r0 *models.Order
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	return r0, args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)

	var r0 []*models.Order
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.Order)
	}

	return r0, args.Int(1), args.Error(2)
}

func (m *OrderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {
	args := m.Called(ctx, filter)

	var r0 []*models.Order
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.Order)
	}

	return r0, args.Int(1), args.Error(2)
}

func (m *OrderRepository) OrderStats(ctx context.Context) (map[models.OrderStatus]*models.StatusStat, error) {
	args := m.Called(ctx)

	var r0 map[models.OrderStatus]*models.StatusStat
	if v := args.Get(0); v != nil {
		r0 = v.(map[models.OrderStatus]*models.StatusStat)
	}

	return r0, args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order, from models.OrderStatus) error {
	args := m.Called(ctx, order, from)
	return args.Error(0)
}

func (m *OrderRepository) SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error {
	args := m.Called(ctx, id, paymentIntentID)
	return args.Error(0)
}

func (m *OrderRepository) UpdatePaymentStatusByIntent(ctx context.Context, paymentIntentID string, status models.PaymentStatus) error {
	args := m.Called(ctx, paymentIntentID, status)
	return args.Error(0)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AddressRepository struct {
	mock.Mock
}

func NewAddressRepository(t cleanupT) *AddressRepository {
	m := &AddressRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *AddressRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.SavedAddress, error) {
	args := m.Called(ctx, userID)

	var r0 []*models.SavedAddress
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.SavedAddress)
	}

	return r0, args.Error(1)
}

func (m *AddressRepository) CreateAddress(ctx context.Context, address *models.SavedAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *AddressRepository) UpdateAddress(ctx context.Context, address *models.SavedAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *AddressRepository) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *AddressRepository) SetDefaultAddress(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error) {
	args := m.Called(ctx, userID, id)

	var r0 *models.SavedAddress
	if v := args.Get(0); v != nil {
		r0 = v.(*models.SavedAddress)
	}

	return r0, args.Error(1)
}

type InvoiceRepository struct {
	mock.Mock
}

func NewInvoiceRepository(t cleanupT) *InvoiceRepository {
	m := &InvoiceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *InvoiceRepository) invoice(args mock.Arguments) (*models.Invoice, error) {
	var r0 *models.Invoice
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Invoice)
	}

	return r0, args.Error(1)
}

func (m *InvoiceRepository) IssueInvoice(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, invoice))
}

func (m *InvoiceRepository) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}

func (m *InvoiceRepository) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, orderID))
}

type RateLimitRepository struct {
	mock.Mock
}

func NewRateLimitRepository(t cleanupT) *RateLimitRepository {
	m := &RateLimitRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *RateLimitRepository) Allow(ctx context.Context, subject string) (bool, int, error) {
	args := m.Called(ctx, subject)
	return args.Bool(0), args.Int(1), args.Error(2)
}
