package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, pageSize int, category string) ([]*models.Product, int, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ProductService {
	return &productService{repo: repo, cache: cache}
}

func productCacheKey(id uuid.UUID) string {
	return cache.Key(cache.ProductKeyPrefix, id.String())
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:          utils.Sanitize(req.Name),
		Description:   utils.Sanitize(req.Description),
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Images:        req.Images,
		Category:      utils.Sanitize(req.Category),
		Stock:         req.Stock,
	}

	if product.Images == nil {
		product.Images = []models.Image{}
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID reads through the cache. Cache failures are logged and fall back to the database.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := productCacheKey(id)

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.Name != nil {
		product.Name = utils.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = utils.Sanitize(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Category != nil {
		product.Category = utils.Sanitize(*req.Category)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("Failed to invalidate product cache", slog.String("productId", id.String()), slog.Any("error", err))
	}

	return product, nil
}

// DeleteProduct removes the product. Carts still referencing it drop the line on their next read.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	logger := middleware.LoggerFromContext(ctx)

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("Failed to invalidate product cache", slog.String("productId", id.String()), slog.Any("error", err))
	}

	return nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int, category string) ([]*models.Product, int, error) {
	products, total, err := s.repo.ListProducts(ctx, page, pageSize, utils.Sanitize(category))
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}
