package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, key models.CartKey, quantity int) (*models.CartView, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, key models.CartKey) (*models.CartView, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	// ReconciledCart loads the cart with every line refreshed from the live products.
	ReconciledCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) loadCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) saveCart(ctx context.Context, cart *models.Cart) error {
	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("User not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}

// ReconciledCart refreshes every line from the products table and drops lines whose product
// is gone. The cart is written back only when a line was dropped. If the products cannot be
// loaded nothing is dropped and the error is returned.
func (s *cartService) ReconciledCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return cart, nil
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart products").WithError(err)
	}

	before := len(cart.Items)

	if cart.Reconcile(products) {
		logger.Info("Dropped cart lines for deleted products",
			slog.String("userId", userID.String()),
			slog.Int("dropped", before-len(cart.Items)))

		if err := s.saveCart(ctx, cart); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	cart, err := s.ReconciledCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return models.NewCartView(cart), nil
}

func (s *cartService) GetSummary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {
	cart, err := s.ReconciledCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := cart.Totals()

	return &models.CartSummary{
		CartCount:     totals.CartCount,
		TotalQuantity: totals.TotalQuantity,
		HasItems:      totals.CartCount > 0,
	}, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartView, error) {
	if req.Quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be at least 1").WithError(models.ErrInvalidQuantity)
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := cart.AddItem(product, req.Quantity, req.Size, req.Color, time.Now()); err != nil {
		return nil, appErrors.ValidationError("Invalid cart item").WithError(err)
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	return models.NewCartView(cart), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, key models.CartKey, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be at least 1").WithError(models.ErrInvalidQuantity)
	}

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(key, quantity, time.Now()); err != nil {
		return nil, cartItemError(err)
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	return models.NewCartView(cart), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, key models.CartKey) (*models.CartView, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(key); err != nil {
		return nil, cartItemError(err)
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	return models.NewCartView(cart), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}

	cart.Clear()

	return s.saveCart(ctx, cart)
}

func cartItemError(err error) error {
	switch {
	case errors.Is(err, models.ErrCartItemNotFound):
		return appErrors.NotFoundError("Item not found in cart").WithError(err)
	case errors.Is(err, models.ErrInvalidQuantity):
		return appErrors.ValidationError("Quantity must be at least 1").WithError(err)
	default:
		return appErrors.InternalError("Failed to change cart").WithError(err)
	}
}
