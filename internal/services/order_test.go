package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront-backend/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	svcMocks "github.com/aaravmahajanofficial/storefront-backend/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	repo          *repoMocks.OrderRepository
	carts         *svcMocks.CartService
	shipping      *svcMocks.ShippingService
	coupons       *svcMocks.CouponService
	notifications *svcMocks.NotificationService
	svc           service.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		repo:          repoMocks.NewOrderRepository(t),
		carts:         svcMocks.NewCartService(t),
		shipping:      svcMocks.NewShippingService(t),
		coupons:       svcMocks.NewCouponService(t),
		notifications: svcMocks.NewNotificationService(t),
	}

	f.svc = service.NewOrderService(f.repo, f.carts, f.shipping, f.coupons, f.notifications, service.OrderPricing{
		TaxRate:      decimal.RequireFromString("0.18"),
		DeliveryDays: 7,
	})

	return f
}

// expectCheckout sets up a cart of two shirts at 500 and a 50 shipping charge for 560001.
func (f *orderFixture) expectCheckout(t *testing.T, userID uuid.UUID) {
	t.Helper()

	shirt := newProduct("shirt", "500", "800", 10)
	cart := cartWith(t, userID, cartLine{product: shirt, quantity: 2, size: "M"})

	f.carts.On("ReconciledCart", mock.Anything, userID).Return(cart, nil).Once()
	f.shipping.On("Calculate", mock.Anything, "560001").Return(&models.ShippingQuote{
		ZipCode: "560001", StateCode: "KA", FinalCharge: decimal.NewFromInt(50),
	}, nil).Once()
}

func shippingAddress() models.Address {
	return models.Address{
		FullName:   "Asha Rao",
		Phone:      "9876543210",
		Street:     "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		Country:    "IN",
	}
}

func TestOrderService_Quote(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Without Coupon", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		// Act
		summary, err := f.svc.Quote(t.Context(), userID, &models.QuoteRequest{ZipCode: "560001"})

		// Assert
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(summary.Subtotal))
		assert.True(t, decimal.NewFromInt(50).Equal(summary.ShippingCharge))
		assert.True(t, decimal.NewFromInt(180).Equal(summary.Tax))
		assert.True(t, summary.CouponDiscount.IsZero())
		assert.True(t, decimal.NewFromInt(1230).Equal(summary.Total))
	})

	t.Run("Success - Coupon Priced Against Subtotal", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		coupon := flatCoupon()
		f.coupons.On("ValidateCoupon", mock.Anything, "SAVE50", mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.NewFromInt(1000))
		})).Return(&pricing.Quote{
			Code: "SAVE50", Discount: decimal.NewFromInt(50), FinalAmount: decimal.NewFromInt(950),
		}, coupon, nil).Once()

		// Act
		summary, err := f.svc.Quote(t.Context(), userID, &models.QuoteRequest{ZipCode: "560001", CouponCode: "SAVE50"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "SAVE50", summary.CouponCode)
		assert.True(t, decimal.NewFromInt(50).Equal(summary.CouponDiscount))
		assert.True(t, decimal.NewFromInt(1180).Equal(summary.Total))
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.carts.On("ReconciledCart", mock.Anything, userID).Return(models.NewCart(userID), nil).Once()

		// Act
		_, err := f.svc.Quote(t.Context(), userID, &models.QuoteRequest{ZipCode: "560001"})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeBadRequest)
		assert.ErrorIs(t, err, pricing.ErrEmptyOrder)
	})

	t.Run("Failure - Coupon Rejected", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		f.coupons.On("ValidateCoupon", mock.Anything, "OLD", mock.Anything).
			Return(nil, nil, appErrors.BadRequestError("Coupon cannot be applied").WithError(pricing.ErrCouponExpired)).Once()

		// Act
		_, err := f.svc.Quote(t.Context(), userID, &models.QuoteRequest{ZipCode: "560001", CouponCode: "OLD"})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeBadRequest)
		assert.ErrorIs(t, err, pricing.ErrCouponExpired)
	})

	t.Run("Failure - Unserviceable Zip", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		shirt := newProduct("shirt", "500", "800", 10)

		f.carts.On("ReconciledCart", mock.Anything, userID).
			Return(cartWith(t, userID, cartLine{product: shirt, quantity: 1}), nil).Once()
		f.shipping.On("Calculate", mock.Anything, "999999").
			Return(nil, appErrors.NotFoundError("No shipping rule for zip code 999999")).Once()

		// Act
		_, err := f.svc.Quote(t.Context(), userID, &models.QuoteRequest{ZipCode: "999999"})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestOrderService_CreateOrder(t *testing.T) {
	userID := uuid.New()
	claims := &models.Claims{UserID: userID, Email: "asha@example.com", Role: models.RoleCustomer}

	t.Run("Success - Places Order Clears Cart And Emails", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		coupon := flatCoupon()
		f.coupons.On("ValidateCoupon", mock.Anything, "SAVE50", mock.Anything).Return(&pricing.Quote{
			Code: "SAVE50", Discount: decimal.NewFromInt(50), FinalAmount: decimal.NewFromInt(950),
		}, coupon, nil).Once()

		f.repo.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.UserID == userID &&
				o.Status == models.OrderStatusPending &&
				o.PaymentStatus == models.PaymentStatusPending &&
				len(o.Items) == 1 &&
				o.Summary.Total.Equal(decimal.NewFromInt(1180))
		}), &coupon.ID).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Order).OrderNumber = "ORD000001"
			}).
			Return(&repository.OrderPlacement{CouponRecorded: true}, nil).Once()

		f.carts.On("ClearCart", mock.Anything, userID).Return(nil).Once()

		sent := make(chan *models.Order, 1)
		f.notifications.On("SendOrderConfirmation", mock.Anything, "asha@example.com", mock.AnythingOfType("*models.Order")).
			Run(func(args mock.Arguments) {
				sent <- args.Get(2).(*models.Order)
			}).
			Return(nil).Once()

		// Act
		order, err := f.svc.CreateOrder(t.Context(), claims, &models.CreateOrderRequest{
			ShippingAddress: shippingAddress(),
			PaymentMethod:   models.PaymentMethodCOD,
			CouponCode:      "SAVE50",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ORD000001", order.OrderNumber)
		assert.Equal(t, "SAVE50", order.Summary.CouponCode)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), order.EstimatedDelivery, time.Minute)

		select {
		case emailed := <-sent:
			assert.Equal(t, order.ID, emailed.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("order confirmation was not sent")
		}
	})

	t.Run("Success - Redemption Failure Still Commits Order", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		coupon := flatCoupon()
		f.coupons.On("ValidateCoupon", mock.Anything, "SAVE50", mock.Anything).Return(&pricing.Quote{
			Code: "SAVE50", Discount: decimal.NewFromInt(50), FinalAmount: decimal.NewFromInt(950),
		}, coupon, nil).Once()

		f.repo.On("PlaceOrder", mock.Anything, mock.Anything, &coupon.ID).
			Return(&repository.OrderPlacement{CouponError: errors.New("deadlock detected")}, nil).Once()
		f.carts.On("ClearCart", mock.Anything, userID).Return(errors.New("connection reset")).Once()

		noEmail := &models.Claims{UserID: userID, Role: models.RoleCustomer}

		// Act
		order, err := f.svc.CreateOrder(t.Context(), noEmail, &models.CreateOrderRequest{
			ShippingAddress: shippingAddress(),
			PaymentMethod:   models.PaymentMethodCard,
			CouponCode:      "SAVE50",
		})

		// Assert
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(order.Summary.CouponDiscount))
	})

	t.Run("Failure - Insufficient Stock", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		f.repo.On("PlaceOrder", mock.Anything, mock.Anything, (*uuid.UUID)(nil)).
			Return(nil, repository.ErrInsufficientStock).Once()

		// Act
		_, err := f.svc.CreateOrder(t.Context(), claims, &models.CreateOrderRequest{
			ShippingAddress: shippingAddress(),
			PaymentMethod:   models.PaymentMethodCOD,
		})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeConflict)
	})

	t.Run("Failure - Coupon Exhausted Between Quote And Commit", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		f.expectCheckout(t, userID)

		coupon := flatCoupon()
		f.coupons.On("ValidateCoupon", mock.Anything, "SAVE50", mock.Anything).Return(&pricing.Quote{
			Code: "SAVE50", Discount: decimal.NewFromInt(50), FinalAmount: decimal.NewFromInt(950),
		}, coupon, nil).Once()
		f.repo.On("PlaceOrder", mock.Anything, mock.Anything, &coupon.ID).
			Return(nil, repository.ErrCouponExhausted).Once()

		// Act
		_, err := f.svc.CreateOrder(t.Context(), claims, &models.CreateOrderRequest{
			ShippingAddress: shippingAddress(),
			PaymentMethod:   models.PaymentMethodCOD,
			CouponCode:      "SAVE50",
		})

		// Assert
		appErr := requireAppError(t, err, appErrors.ErrCodeConflict)
		assert.Equal(t, "Coupon usage limit reached", appErr.Message)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	owner := uuid.New()
	order := &models.Order{ID: uuid.New(), UserID: owner, Status: models.OrderStatusPending}

	t.Run("Success - Owner", func(t *testing.T) {
		f := newOrderFixture(t)
		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()

		got, err := f.svc.GetOrder(t.Context(), &models.Claims{UserID: owner, Role: models.RoleCustomer}, order.ID)

		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("Success - Admin", func(t *testing.T) {
		f := newOrderFixture(t)
		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()

		_, err := f.svc.GetOrder(t.Context(), &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}, order.ID)

		require.NoError(t, err)
	})

	t.Run("Failure - Other Customer Sees Not Found", func(t *testing.T) {
		f := newOrderFixture(t)
		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()

		_, err := f.svc.GetOrder(t.Context(), &models.Claims{UserID: uuid.New(), Role: models.RoleCustomer}, order.ID)

		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Missing", func(t *testing.T) {
		f := newOrderFixture(t)
		id := uuid.New()
		f.repo.On("GetOrderByID", mock.Anything, id).Return(nil, sql.ErrNoRows).Once()

		_, err := f.svc.GetOrder(t.Context(), &models.Claims{UserID: owner}, id)

		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Run("Success - With Stats", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		filter := models.OrderFilter{Status: models.OrderStatusShipped, Search: "ORD00", Page: 1, Size: 10}
		orders := []*models.Order{{ID: uuid.New(), Status: models.OrderStatusShipped}}
		stats := map[models.OrderStatus]*models.StatusStat{
			models.OrderStatusShipped: {Count: 1, TotalValue: decimal.NewFromInt(1230)},
		}

		f.repo.On("ListOrders", mock.Anything, filter).Return(orders, 1, nil).Once()
		f.repo.On("OrderStats", mock.Anything).Return(stats, nil).Once()

		// Act
		resp, err := f.svc.ListOrders(t.Context(), filter)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 1, resp.Stats[models.OrderStatusShipped].Count)
	})

	t.Run("Failure - Unknown Status", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.ListOrders(t.Context(), models.OrderFilter{Status: "lost"})

		requireAppError(t, err, appErrors.ErrCodeValidation)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	t.Run("Success - Skips Ahead", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		order := &models.Order{ID: uuid.New(), Status: models.OrderStatusConfirmed}

		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()
		f.repo.On("UpdateOrderStatus", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.Status == models.OrderStatusShipped && o.Notes == "AWB 1234"
		}), models.OrderStatusConfirmed).Return(nil).Once()

		// Act
		updated, err := f.svc.UpdateOrderStatus(t.Context(), order.ID, &models.UpdateOrderStatusRequest{
			Status: models.OrderStatusShipped, Notes: "AWB 1234",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, updated.Status)
	})

	t.Run("Success - Missing Notes Keep Stored Notes", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		order := &models.Order{ID: uuid.New(), Status: models.OrderStatusShipped, Notes: "AWB 1234"}

		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()
		f.repo.On("UpdateOrderStatus", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.Status == models.OrderStatusDelivered && o.Notes == "AWB 1234"
		}), models.OrderStatusShipped).Return(nil).Once()

		// Act
		updated, err := f.svc.UpdateOrderStatus(t.Context(), order.ID, &models.UpdateOrderStatusRequest{
			Status: models.OrderStatusDelivered,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "AWB 1234", updated.Notes)
	})

	t.Run("Failure - Backwards Move", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		order := &models.Order{ID: uuid.New(), Status: models.OrderStatusShipped}

		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()

		// Act
		_, err := f.svc.UpdateOrderStatus(t.Context(), order.ID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusConfirmed})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeValidation)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("Failure - Terminal Status", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		order := &models.Order{ID: uuid.New(), Status: models.OrderStatusCancelled}

		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()

		// Act
		_, err := f.svc.UpdateOrderStatus(t.Context(), order.ID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusPending})

		// Assert
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("Failure - Concurrent Change", func(t *testing.T) {
		// Arrange
		f := newOrderFixture(t)
		order := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending}

		f.repo.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()
		f.repo.On("UpdateOrderStatus", mock.Anything, mock.Anything, models.OrderStatusPending).
			Return(repository.ErrStaleStatus).Once()

		// Act
		_, err := f.svc.UpdateOrderStatus(t.Context(), order.ID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeConflict)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	f := newOrderFixture(t)
	id := uuid.New()

	f.repo.On("DeleteOrder", mock.Anything, id).Return(sql.ErrNoRows).Once()

	err := f.svc.DeleteOrder(t.Context(), id)

	requireAppError(t, err, appErrors.ErrCodeNotFound)
}
