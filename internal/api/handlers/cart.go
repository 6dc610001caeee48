package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: utils.NewValidator()}
}

// cartKey builds the line key from the productId path value and the size/color query values.
func cartKey(r *http.Request) (models.CartKey, error) {
	productID, err := utils.ParseID(r, "productId")
	if err != nil {
		return models.CartKey{}, err
	}

	query := r.URL.Query()

	return models.NewCartKey(productID, query.Get("size"), query.Get("color")), nil
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the caller's cart with every line refreshed from the live product catalogue. Lines whose product no longer exists are dropped.
//	@Tags			Carts
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Reconciled cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"User not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/carts [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get cart")
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// GetSummary godoc
//	@Summary		Get cart badge counts
//	@Tags			Carts
//	@Produce		json
//	@Success		200	{object}	models.CartSummary
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/summary [get]
func (h *CartHandler) GetSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get cart summary")
		if !ok {
			return
		}

		summary, err := h.cartService.GetSummary(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart summary", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Adds quantity of a product variant. Adding an existing variant increases its quantity.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddCartItemRequest	true	"Product, quantity and optional size/color"
//	@Success		200		{object}	models.CartView
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/carts/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "add cart item")
		if !ok {
			return
		}

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add cart item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set the quantity of a cart line
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			productId	path		string						true	"Product ID (UUID)"	Format(uuid)
//	@Param			size		query		string						false	"Variant size"
//	@Param			color		query		string						false	"Variant color"
//	@Param			quantity	body		models.UpdateCartItemRequest	true	"New quantity (at least 1)"
//	@Success		200			{object}	models.CartView
//	@Failure		400			{object}	response.ErrorResponse	"Invalid quantity"
//	@Failure		404			{object}	response.ErrorResponse	"Item not found in cart"
//	@Security		BearerAuth
//	@Router			/carts/items/{productId} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "update cart quantity")
		if !ok {
			return
		}

		key, err := cartKey(r)
		if err != nil {
			logger.Warn("Invalid cart item key", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, key, req.Quantity)
		if err != nil {
			logger.Error("Failed to update cart quantity", slog.String("key", key.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Carts
//	@Produce		json
//	@Param			productId	path		string	true	"Product ID (UUID)"	Format(uuid)
//	@Param			size		query		string	false	"Variant size"
//	@Param			color		query		string	false	"Variant color"
//	@Success		200			{object}	models.CartView
//	@Failure		404			{object}	response.ErrorResponse	"Item not found in cart"
//	@Security		BearerAuth
//	@Router			/carts/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "remove cart item")
		if !ok {
			return
		}

		key, err := cartKey(r)
		if err != nil {
			logger.Warn("Invalid cart item key", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, key)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("key", key.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary	Empty the cart
//	@Tags		Carts
//	@Success	200	{object}	response.APIResponse
//	@Security	BearerAuth
//	@Router		/carts [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "clear cart")
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
	}
}
