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

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: utils.NewValidator()}
}

// CreateUser godoc
//	@Summary		Provision a user
//	@Description	Creates the local record of a user issued by the identity provider, with an empty cart.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.CreateUserRequest	true	"Identity provider id, name, email and role"
//	@Success		201		{object}	models.User
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Security		BearerAuth
//	@Router			/admin/users [post]
func (h *UserHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "create user")
		if !ok {
			return
		}

		var req models.CreateUserRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.CreateUser(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create user", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User provisioned", slog.String("newUserId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// Profile godoc
//	@Summary	Get the caller's profile
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	models.User
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure	404	{object}	response.ErrorResponse	"User not found"
//	@Security	BearerAuth
//	@Router		/users/me [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get profile")
		if !ok {
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// UpdateProfile godoc
//	@Summary		Update the caller's profile
//	@Description	Changes the name and/or email. Absent fields are left unchanged.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		models.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	models.User
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Security		BearerAuth
//	@Router			/users/me [put]
func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "update profile")
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.UpdateProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Profile updated")
		response.Success(w, http.StatusOK, user)
	}
}

// ListUsers godoc
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		pageSize	query		int	false	"Page size"		default(10)
//	@Success	200			{object}	models.PaginatedResponse
//	@Security	BearerAuth
//	@Router		/admin/users [get]
func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "list users")
		if !ok {
			return
		}

		page, pageSize := utils.ParsePagination(r)

		users, total, err := h.userService.ListUsers(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list users", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     users,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// DeleteUser godoc
//	@Summary		Delete a user
//	@Description	Removes the account and its saved addresses. Users with orders cannot be deleted.
//	@Tags			Users
//	@Param			id	path	string	true	"User ID (UUID)"	Format(uuid)
//	@Success		204
//	@Failure		400	{object}	response.ErrorResponse	"Own account or invalid ID"
//	@Failure		404	{object}	response.ErrorResponse	"User not found"
//	@Failure		409	{object}	response.ErrorResponse	"User has placed orders"
//	@Security		BearerAuth
//	@Router			/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "delete user")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.userService.DeleteUser(r.Context(), claims, id); err != nil {
			logger.Error("Failed to delete user", slog.String("targetUserId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User deleted", slog.String("targetUserId", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
