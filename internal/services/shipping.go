package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type ShippingService interface {
	CreateRule(ctx context.Context, req *models.CreateShippingRuleRequest) (*models.ShippingRule, error)
	ListRules(ctx context.Context) ([]*models.ShippingRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
	DeleteRulesByState(ctx context.Context, stateCode string) (int, error)
	Calculate(ctx context.Context, zipCode string) (*models.ShippingQuote, error)
}

type shippingService struct {
	repo  repository.ShippingRepository
	cache cache.Cache
}

func NewShippingService(repo repository.ShippingRepository, cache cache.Cache) ShippingService {
	return &shippingService{repo: repo, cache: cache}
}

func shippingCacheKey(zipCode string) string {
	return cache.Key(cache.ShippingKeyPrefix, zipCode)
}

func (s *shippingService) CreateRule(ctx context.Context, req *models.CreateShippingRuleRequest) (*models.ShippingRule, error) {
	logger := middleware.LoggerFromContext(ctx)

	rule := &models.ShippingRule{
		ZipCode:       strings.TrimSpace(req.ZipCode),
		State:         utils.Sanitize(req.State),
		StateCode:     strings.ToUpper(strings.TrimSpace(req.StateCode)),
		GSTCode:       strings.TrimSpace(req.GSTCode),
		Charges:       req.Charges,
		PriceLessThan: req.PriceLessThan,
	}

	if err := s.repo.CreateRule(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrDuplicateZipCode) {
			return nil, appErrors.DuplicateEntryError("A shipping rule already exists for this zip code").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create shipping rule").WithError(err)
	}

	if err := s.cache.Delete(ctx, shippingCacheKey(rule.ZipCode)); err != nil {
		logger.Warn("Failed to invalidate shipping cache", slog.String("zipCode", rule.ZipCode), slog.Any("error", err))
	}

	return rule, nil
}

func (s *shippingService) ListRules(ctx context.Context) ([]*models.ShippingRule, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch shipping rules").WithError(err)
	}

	return rules, nil
}

func (s *shippingService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	logger := middleware.LoggerFromContext(ctx)

	rule, err := s.repo.GetRuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Shipping rule not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to fetch shipping rule").WithError(err)
	}

	if err := s.repo.DeleteRule(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Shipping rule not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete shipping rule").WithError(err)
	}

	if err := s.cache.Delete(ctx, shippingCacheKey(rule.ZipCode)); err != nil {
		logger.Warn("Failed to invalidate shipping cache", slog.String("zipCode", rule.ZipCode), slog.Any("error", err))
	}

	return nil
}

// DeleteRulesByState removes every rule of the state and returns how many were removed.
func (s *shippingService) DeleteRulesByState(ctx context.Context, stateCode string) (int, error) {
	logger := middleware.LoggerFromContext(ctx)

	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	if stateCode == "" {
		return 0, appErrors.ValidationError("State code is required")
	}

	zipCodes, err := s.repo.DeleteRulesByState(ctx, stateCode)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to delete shipping rules").WithError(err)
	}

	if len(zipCodes) == 0 {
		return 0, appErrors.NotFoundError("No shipping rules found for state " + stateCode)
	}

	keys := make([]string, len(zipCodes))
	for i, zip := range zipCodes {
		keys[i] = shippingCacheKey(zip)
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("Failed to invalidate shipping cache", slog.String("stateCode", stateCode), slog.Any("error", err))
	}

	logger.Info("Shipping rules deleted", slog.String("stateCode", stateCode), slog.Int("count", len(zipCodes)))

	return len(zipCodes), nil
}

// Calculate returns the charge for zipCode. Rules are read through the cache.
func (s *shippingService) Calculate(ctx context.Context, zipCode string) (*models.ShippingQuote, error) {
	logger := middleware.LoggerFromContext(ctx)

	zipCode = strings.TrimSpace(zipCode)
	if zipCode == "" {
		return nil, appErrors.ValidationError("Zip code is required")
	}

	key := shippingCacheKey(zipCode)

	var cached models.ShippingRule

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Shipping cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return cached.Quote(), nil
	}

	rule, err := s.repo.GetRuleByZip(ctx, zipCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("No shipping rule for zip code " + zipCode).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch shipping rule").WithError(err)
	}

	if err := s.cache.Set(ctx, key, rule, 0); err != nil {
		logger.Warn("Shipping cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return rule.Quote(), nil
}
