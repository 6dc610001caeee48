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

type AddressHandler struct {
	addressService service.AddressService
	validator      *validator.Validate
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService, validator: utils.NewValidator()}
}

// ListAddresses godoc
//	@Summary	List the caller's saved addresses
//	@Tags		Addresses
//	@Produce	json
//	@Success	200	{array}	models.SavedAddress
//	@Security	BearerAuth
//	@Router		/users/me/addresses [get]
func (h *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "list addresses")
		if !ok {
			return
		}

		addresses, err := h.addressService.ListAddresses(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list addresses", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

// AddAddress godoc
//	@Summary		Save an address
//	@Description	Country defaults to IN. Saving with isDefault moves the default flag to this address.
//	@Tags			Addresses
//	@Accept			json
//	@Produce		json
//	@Param			address	body		models.AddressRequest	true	"Address"
//	@Success		201		{object}	models.SavedAddress
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Security		BearerAuth
//	@Router			/users/me/addresses [post]
func (h *AddressHandler) AddAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "add address")
		if !ok {
			return
		}

		var req models.AddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		address, err := h.addressService.AddAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add address", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Address saved", slog.String("addressId", address.ID.String()))
		response.Success(w, http.StatusCreated, address)
	}
}

// UpdateAddress godoc
//	@Summary	Replace a saved address
//	@Tags		Addresses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Address ID (UUID)"	Format(uuid)
//	@Param		address	body		models.AddressRequest	true	"Address"
//	@Success	200		{object}	models.SavedAddress
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Address not found"
//	@Security	BearerAuth
//	@Router		/users/me/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "update address")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		address, err := h.addressService.UpdateAddress(r.Context(), claims.UserID, id, &req)
		if err != nil {
			logger.Error("Failed to update address", slog.String("addressId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

// DeleteAddress godoc
//	@Summary	Delete a saved address
//	@Tags		Addresses
//	@Param		id	path	string	true	"Address ID (UUID)"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Address not found"
//	@Security	BearerAuth
//	@Router		/users/me/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "delete address")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.addressService.DeleteAddress(r.Context(), claims.UserID, id); err != nil {
			logger.Error("Failed to delete address", slog.String("addressId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SetDefaultAddress godoc
//	@Summary	Make a saved address the default
//	@Tags		Addresses
//	@Produce	json
//	@Param		id	path		string	true	"Address ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.SavedAddress
//	@Failure	404	{object}	response.ErrorResponse	"Address not found"
//	@Security	BearerAuth
//	@Router		/users/me/addresses/{id}/default [put]
func (h *AddressHandler) SetDefaultAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "set default address")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		address, err := h.addressService.SetDefaultAddress(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Failed to set default address", slog.String("addressId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}
