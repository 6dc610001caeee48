// Package mocks holds testify mocks of the service interfaces in the layout mockery generates.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/pricing"
	"github.com/aaravmahajanofficial/storefront-backend/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t cleanupT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type CartService struct {
	mock.Mock
}

func NewCartService(t cleanupT) *CartService {
	m := &CartService{}
	register(&m.Mock, t)

	return m
}

func (m *CartService) cartView(args mock.Arguments) (*models.CartView, error) {
	var r0 *models.CartView
	if v := args.Get(0); v != nil {
		r0 = v.(*models.CartView)
	}

	return r0, args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	return m.cartView(m.Called(ctx, userID))
}

func (m *CartService) GetSummary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {
	args := m.Called(ctx, userID)

	var r0 *models.CartSummary
	if v := args.Get(0); v != nil {
		r0 = v.(*models.CartSummary)
	}

	return r0, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartView, error) {
	return m.cartView(m.Called(ctx, userID, req))
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, key models.CartKey, quantity int) (*models.CartView, error) {
	return m.cartView(m.Called(ctx, userID, key, quantity))
}

func (m *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, key models.CartKey) (*models.CartView, error) {
	return m.cartView(m.Called(ctx, userID, key))
}

func (m *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *CartService) ReconciledCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	var r0 *models.Cart
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, args.Error(1)
}

type CouponService struct {
	mock.Mock
}

func NewCouponService(t cleanupT) *CouponService {
	m := &CouponService{}
	register(&m.Mock, t)

	return m
}

func (m *CouponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {
	args := m.Called(ctx, req)

	var r0 *models.Coupon
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Coupon)
	}

	return r0, args.Error(1)
}

func (m *CouponService) GetCoupon(ctx context.Context, id uuid.UUID) (*models.CouponView, error) {
	args := m.Called(ctx, id)

	var r0 *models.CouponView
	if v := args.Get(0); v != nil {
		r0 = v.(*models.CouponView)
	}

	return r0, args.Error(1)
}

func (m *CouponService) UpdateCoupon(ctx context.Context, id uuid.UUID, req *models.UpdateCouponRequest) (*models.Coupon, error) {
	args := m.Called(ctx, id, req)

	var r0 *models.Coupon
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Coupon)
	}

	return r0, args.Error(1)
}

func (m *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CouponService) ListCoupons(ctx context.Context, filter models.CouponFilter) ([]*models.CouponView, int, error) {
	args := m.Called(ctx, filter)

	var r0 []*models.CouponView
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.CouponView)
	}

	return r0, args.Int(1), args.Error(2)
}

func (m *CouponService) ApplyCoupon(ctx context.Context, userID uuid.UUID, req *models.ApplyCouponRequest) (*models.ApplyCouponResponse, error) {
	args := m.Called(ctx, userID, req)

	var r0 *models.ApplyCouponResponse
	if v := args.Get(0); v != nil {
		r0 = v.(*models.ApplyCouponResponse)
	}

	return r0, args.Error(1)
}

func (m *CouponService) ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (*pricing.Quote, *models.Coupon, error) {
	args := m.Called(ctx, code, amount)

	var r0 *pricing.Quote
	if v := args.Get(0); v != nil {
		r0 = v.(*pricing.Quote)
	}

	var r1 *models.Coupon
	if v := args.Get(1); v != nil {
		r1 = v.(*models.Coupon)
	}

	return r0, r1, args.Error(2)
}

func (m *CouponService) RecordUsage(ctx context.Context, couponID, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, couponID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *CouponService) Analytics(ctx context.Context) (*models.CouponAnalytics, error) {
	args := m.Called(ctx)

	var r0 *models.CouponAnalytics
	if v := args.Get(0); v != nil {
		r0 = v.(*models.CouponAnalytics)
	}

	return r0, args.Error(1)
}

type ShippingService struct {
	mock.Mock
}

func NewShippingService(t cleanupT) *ShippingService {
	m := &ShippingService{}
	register(&m.Mock, t)

	return m
}

func (m *ShippingService) CreateRule(ctx context.Context, req *models.CreateShippingRuleRequest) (*models.ShippingRule, error) {
	args := m.Called(ctx, req)

	var r0 *models.ShippingRule
	if v := args.Get(0); v != nil {
		r0 = v.(*models.ShippingRule)
	}

	return r0, args.Error(1)
}

func (m *ShippingService) ListRules(ctx context.Context) ([]*models.ShippingRule, error) {
	args := m.Called(ctx)

	var r0 []*models.ShippingRule
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.ShippingRule)
	}

	return r0, args.Error(1)
}

func (m *ShippingService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ShippingService) DeleteRulesByState(ctx context.Context, stateCode string) (int, error) {
	args := m.Called(ctx, stateCode)
	return args.Int(0), args.Error(1)
}

func (m *ShippingService) Calculate(ctx context.Context, zipCode string) (*models.ShippingQuote, error) {
	args := m.Called(ctx, zipCode)

	var r0 *models.ShippingQuote
	if v := args.Get(0); v != nil {
		r0 = v.(*models.ShippingQuote)
	}

	return r0, args.Error(1)
}

type ProductService struct {
	mock.Mock
}

func NewProductService(t cleanupT) *ProductService {
	m := &ProductService{}
	register(&m.Mock, t)

	return m
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)

	var r0 *models.Product
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	var r0 *models.Product
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	var r0 *models.Product
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductService) ListProducts(ctx context.Context, page, pageSize int, category string) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, pageSize, category)

	var r0 []*models.Product
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	return r0, args.Int(1), args.Error(2)
}

type OrderService struct {
	mock.Mock
}

func NewOrderService(t cleanupT) *OrderService {
	m := &OrderService{}
	register(&m.Mock, t)

	return m
}

func (m *OrderService) order(args mock.Arguments) (*models.Order, error) {
	var r0 *models.Order
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	return r0, args.Error(1)
}

func (m *OrderService) Quote(ctx context.Context, userID uuid.UUID, req *models.QuoteRequest) (*models.OrderSummary, error) {
	args := m.Called(ctx, userID, req)

	var r0 *models.OrderSummary
	if v := args.Get(0); v != nil {
		r0 = v.(*models.OrderSummary)
	}

	return r0, args.Error(1)
}

func (m *OrderService) CreateOrder(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {
	return m.order(m.Called(ctx, claims, req))
}

func (m *OrderService) GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error) {
	return m.order(m.Called(ctx, claims, id))
}

func (m *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)

	var r0 []*models.Order
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.Order)
	}

	return r0, args.Int(1), args.Error(2)
}

func (m *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderListResponse, error) {
	args := m.Called(ctx, filter)

	var r0 *models.OrderListResponse
	if v := args.Get(0); v != nil {
		r0 = v.(*models.OrderListResponse)
	}

	return r0, args.Error(1)
}

func (m *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	return m.order(m.Called(ctx, id, req))
}

func (m *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type PaymentService struct {
	mock.Mock
}

func NewPaymentService(t cleanupT) *PaymentService {
	m := &PaymentService{}
	register(&m.Mock, t)

	return m
}

func (m *PaymentService) CreatePayment(ctx context.Context, claims *models.Claims, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	args := m.Called(ctx, claims, req)

	var r0 *models.PaymentResponse
	if v := args.Get(0); v != nil {
		r0 = v.(*models.PaymentResponse)
	}

	return r0, args.Error(1)
}

func (m *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(ctx, payload, signature)

	var r0 stripe.Event
	if v := args.Get(0); v != nil {
		r0 = v.(stripe.Event)
	}

	return r0, args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func NewNotificationService(t cleanupT) *NotificationService {
	m := &NotificationService{}
	register(&m.Mock, t)

	return m
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	return m.Called(ctx, to, order).Error(0)
}

type UserService struct {
	mock.Mock
}

func NewUserService(t cleanupT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)

	return m
}

func (m *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	var r0 *models.User
	if v := args.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	var r0 *models.User
	if v := args.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, args.Error(1)
}

func (m *UserService) ListUsers(ctx context.Context, page, size int) ([]*models.User, int, error) {
	args := m.Called(ctx, page, size)

	var r0 []*models.User
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.User)
	}

	return r0, args.Int(1), args.Error(2)
}

func (m *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)

	var r0 *models.User
	if v := args.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, args.Error(1)
}

func (m *UserService) DeleteUser(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	args := m.Called(ctx, claims, id)
	return args.Error(0)
}

type AddressService struct {
	mock.Mock
}

func NewAddressService(t cleanupT) *AddressService {
	m := &AddressService{}
	register(&m.Mock, t)

	return m
}

func (m *AddressService) address(args mock.Arguments) (*models.SavedAddress, error) {
	var r0 *models.SavedAddress
	if v := args.Get(0); v != nil {
		r0 = v.(*models.SavedAddress)
	}

	return r0, args.Error(1)
}

func (m *AddressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.SavedAddress, error) {
	args := m.Called(ctx, userID)

	var r0 []*models.SavedAddress
	if v := args.Get(0); v != nil {
		r0 = v.([]*models.SavedAddress)
	}

	return r0, args.Error(1)
}

func (m *AddressService) AddAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.SavedAddress, error) {
	return m.address(m.Called(ctx, userID, req))
}

func (m *AddressService) UpdateAddress(ctx context.Context, userID, id uuid.UUID, req *models.AddressRequest) (*models.SavedAddress, error) {
	return m.address(m.Called(ctx, userID, id, req))
}

func (m *AddressService) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *AddressService) SetDefaultAddress(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error) {
	return m.address(m.Called(ctx, userID, id))
}

type InvoiceService struct {
	mock.Mock
}

func NewInvoiceService(t cleanupT) *InvoiceService {
	m := &InvoiceService{}
	register(&m.Mock, t)

	return m
}

func (m *InvoiceService) invoiceData(args mock.Arguments) (*models.InvoiceData, error) {
	var r0 *models.InvoiceData
	if v := args.Get(0); v != nil {
		r0 = v.(*models.InvoiceData)
	}

	return r0, args.Error(1)
}

func (m *InvoiceService) IssueInvoice(ctx context.Context, orderID uuid.UUID) (*models.InvoiceData, error) {
	return m.invoiceData(m.Called(ctx, orderID))
}

func (m *InvoiceService) GetOrderInvoice(ctx context.Context, claims *models.Claims, orderID uuid.UUID) (*models.InvoiceData, error) {
	return m.invoiceData(m.Called(ctx, claims, orderID))
}

func (m *InvoiceService) VerifyInvoice(ctx context.Context, invoiceID string) (*models.InvoiceData, error) {
	return m.invoiceData(m.Called(ctx, invoiceID))
}
