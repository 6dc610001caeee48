package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topUsedCoupons = 5

type CouponService interface {
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*models.CouponView, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, req *models.UpdateCouponRequest) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context, filter models.CouponFilter) ([]*models.CouponView, int, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, req *models.ApplyCouponRequest) (*models.ApplyCouponResponse, error)
	// ValidateCoupon prices code against amount without consuming it.
	ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (*pricing.Quote, *models.Coupon, error)
	RecordUsage(ctx context.Context, couponID, orderID uuid.UUID) (bool, error)
	Analytics(ctx context.Context) (*models.CouponAnalytics, error)
}

var ErrCouponOrderMismatch = errors.New("order was not placed with this coupon")

type couponService struct {
	repo    repository.CouponRepository
	orders  repository.OrderRepository
	limiter repository.RateLimitRepository
}

func NewCouponService(repo repository.CouponRepository, orders repository.OrderRepository, limiter repository.RateLimitRepository) CouponService {
	return &couponService{repo: repo, orders: orders, limiter: limiter}
}

// couponError maps a pricing failure onto the API error kinds.
func couponError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrCouponNotFound):
		return appErrors.NotFoundError("Coupon not found").WithError(err)
	case errors.Is(err, pricing.ErrInvalidOrderAmount):
		return appErrors.ValidationError("Order amount must be greater than zero").WithError(err)
	case errors.Is(err, pricing.ErrCouponNotStarted),
		errors.Is(err, pricing.ErrCouponExpired),
		errors.Is(err, pricing.ErrCouponLimitExceeded),
		errors.Is(err, pricing.ErrBelowMinimum),
		errors.Is(err, pricing.ErrAboveMaximum),
		errors.Is(err, pricing.ErrInvalidCouponType):
		return appErrors.BadRequestError("Coupon cannot be applied").WithDetail(err.Error()).WithError(err)
	default:
		return appErrors.InternalError("Failed to validate coupon").WithError(err)
	}
}

func couponRulesError(err error) error {
	return appErrors.ValidationError("Invalid coupon").WithDetail(err.Error()).WithError(err)
}

func (s *couponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := &models.Coupon{
		Code:       models.NormalizeCouponCode(req.Code),
		Name:       utils.Sanitize(req.Name),
		Type:       req.Type,
		Amount:     req.Amount,
		MinValue:   req.MinValue,
		MaxValue:   req.MaxValue,
		UsageLimit: req.UsageLimit,
		StartDate:  req.StartDate,
		ExpiryDate: req.ExpiryDate,
		IsActive:   isActive,
	}

	if err := pricing.CheckRules(coupon); err != nil {
		return nil, couponRulesError(err)
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicateCouponCode) {
			return nil, appErrors.DuplicateEntryError("Coupon code already exists").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create coupon").WithError(err)
	}

	return coupon, nil
}

func (s *couponService) getCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	coupon, err := s.repo.GetCouponByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Coupon not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch coupon").WithError(err)
	}

	return coupon, nil
}

func (s *couponService) GetCoupon(ctx context.Context, id uuid.UUID) (*models.CouponView, error) {
	coupon, err := s.getCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.CouponView{Coupon: coupon, Status: pricing.Status(coupon, time.Now())}, nil
}

// UpdateCoupon applies the set fields and re-checks the definition. The code and usage count never change.
func (s *couponService) UpdateCoupon(ctx context.Context, id uuid.UUID, req *models.UpdateCouponRequest) (*models.Coupon, error) {
	coupon, err := s.getCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		coupon.Name = utils.Sanitize(*req.Name)
	}
	if req.Type != nil {
		coupon.Type = *req.Type
	}
	if req.Amount != nil {
		coupon.Amount = *req.Amount
	}
	if req.MinValue != nil {
		coupon.MinValue = *req.MinValue
	}
	if req.MaxValue != nil {
		coupon.MaxValue = *req.MaxValue
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = *req.UsageLimit
	}
	if req.StartDate != nil {
		coupon.StartDate = req.StartDate
	}
	if req.ExpiryDate != nil {
		coupon.ExpiryDate = req.ExpiryDate
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := pricing.CheckRules(coupon); err != nil {
		return nil, couponRulesError(err)
	}

	if coupon.UsageLimit < coupon.UsedCount {
		return nil, appErrors.ValidationError("Invalid coupon").
			WithDetail(fmt.Sprintf("usageLimit cannot be below the %d redemptions already made", coupon.UsedCount))
	}

	if err := s.repo.UpdateCoupon(ctx, coupon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Coupon not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update coupon").WithError(err)
	}

	return coupon, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCoupon(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Coupon not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete coupon").WithError(err)
	}

	return nil
}

// ListCoupons filters by search and type in the database, then by derived status, then pages.
func (s *couponService) ListCoupons(ctx context.Context, filter models.CouponFilter) ([]*models.CouponView, int, error) {
	coupons, err := s.repo.ListCoupons(ctx, utils.Sanitize(filter.Search), filter.Type)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch coupons").WithError(err)
	}

	views := pricing.WithStatus(coupons, filter.Status, time.Now())

	return models.Paginate(views, filter.Page, filter.Size), len(views), nil
}

func (s *couponService) ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (*pricing.Quote, *models.Coupon, error) {
	code = models.NormalizeCouponCode(code)
	if code == "" {
		return nil, nil, appErrors.ValidationError("Coupon code is required")
	}

	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, couponError(pricing.ErrCouponNotFound)
		}

		return nil, nil, appErrors.DatabaseError("Failed to fetch coupon").WithError(err)
	}

	quote, err := pricing.Validate(coupon, amount, time.Now())
	if err != nil {
		return nil, nil, couponError(err)
	}

	return quote, coupon, nil
}

// ApplyCoupon is the shopper-facing validation. Attempts are rate limited per user; when the
// limiter itself fails the attempt is let through.
func (s *couponService) ApplyCoupon(ctx context.Context, userID uuid.UUID, req *models.ApplyCouponRequest) (*models.ApplyCouponResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	allowed, retryAfter, err := s.limiter.Allow(ctx, userID.String())
	if err != nil {
		logger.Warn("Coupon rate limit check failed, allowing attempt", slog.Any("error", err))

		allowed = true
	}

	if !allowed {
		metrics.RecordCouponApplication("rate_limited")

		return nil, appErrors.TooManyRequestsError("Too many coupon attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	quote, _, err := s.ValidateCoupon(ctx, req.Code, req.OrderAmount)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrCodeDatabaseError) {
			metrics.RecordCouponApplication("error")
			logger.Error("Coupon lookup failed", slog.Any("error", err))

			return nil, err
		}

		metrics.RecordCouponApplication("rejected")
		logger.Info("Coupon rejected", slog.String("code", models.NormalizeCouponCode(req.Code)), slog.Any("error", err))

		return nil, err
	}

	metrics.RecordCouponApplication("applied")

	return &models.ApplyCouponResponse{
		Code:        quote.Code,
		Discount:    quote.Discount,
		FinalAmount: quote.FinalAmount,
	}, nil
}

// RecordUsage counts one redemption of the coupon by orderID. The order must have been placed
// with this coupon's code. Repeating it for the same order reports false and changes nothing.
func (s *couponService) RecordUsage(ctx context.Context, couponID, orderID uuid.UUID) (bool, error) {
	coupon, err := s.getCoupon(ctx, couponID)
	if err != nil {
		return false, err
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return false, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if models.NormalizeCouponCode(order.Summary.CouponCode) != coupon.Code {
		return false, appErrors.ValidationError("Order was not placed with this coupon").
			WithDetail(fmt.Sprintf("order %s carries coupon %q", order.OrderNumber, order.Summary.CouponCode)).
			WithError(ErrCouponOrderMismatch)
	}

	recorded, err := s.repo.RecordUsage(ctx, couponID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCouponExhausted):
			return false, appErrors.ConflictError("Coupon usage limit reached").WithError(err)
		case errors.Is(err, repository.ErrUnknownCoupon):
			return false, appErrors.NotFoundError("Coupon not found").WithError(err)
		case errors.Is(err, repository.ErrUnknownOrder):
			return false, appErrors.NotFoundError("Order not found").WithError(err)
		default:
			return false, appErrors.DatabaseError("Failed to record coupon usage").WithError(err)
		}
	}

	return recorded, nil
}

func (s *couponService) Analytics(ctx context.Context) (*models.CouponAnalytics, error) {
	coupons, err := s.repo.ListCoupons(ctx, "", "")
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch coupons").WithError(err)
	}

	return pricing.Analytics(coupons, time.Now(), topUsedCoupons), nil
}
