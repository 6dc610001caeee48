package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CouponHandler struct {
	couponService service.CouponService
	validator     *validator.Validate
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService, validator: utils.NewValidator()}
}

// CreateCoupon godoc
//	@Summary		Create a coupon
//	@Description	Creates a flat or percentage coupon. Codes are stored upper-cased and must be unique.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.CreateCouponRequest	true	"Coupon definition"
//	@Success		201		{object}	models.Coupon
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		403		{object}	response.ErrorResponse	"Admin access required"
//	@Failure		409		{object}	response.ErrorResponse	"Coupon code already exists"
//	@Security		BearerAuth
//	@Router			/coupons [post]
func (h *CouponHandler) CreateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "create coupon")
		if !ok {
			return
		}

		var req models.CreateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create coupon input")
			return
		}

		coupon, err := h.couponService.CreateCoupon(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create coupon", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon created", slog.String("couponId", coupon.ID.String()), slog.String("code", coupon.Code))
		response.Success(w, http.StatusCreated, coupon)
	}
}

// GetCoupon godoc
//	@Summary	Get a coupon
//	@Tags		Coupons
//	@Produce	json
//	@Param		id	path		string	true	"Coupon ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.CouponView
//	@Failure	404	{object}	response.ErrorResponse	"Coupon not found"
//	@Security	BearerAuth
//	@Router		/coupons/{id} [get]
func (h *CouponHandler) GetCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "get coupon")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		coupon, err := h.couponService.GetCoupon(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get coupon", slog.String("couponId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, coupon)
	}
}

// UpdateCoupon godoc
//	@Summary		Update a coupon
//	@Description	Changes only the fields that are set. The code and usage count cannot be changed.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Coupon ID (UUID)"	Format(uuid)
//	@Param			coupon	body		models.UpdateCouponRequest	true	"Fields to change"
//	@Success		200		{object}	models.Coupon
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Coupon not found"
//	@Security		BearerAuth
//	@Router			/coupons/{id} [put]
func (h *CouponHandler) UpdateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "update coupon")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		coupon, err := h.couponService.UpdateCoupon(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update coupon", slog.String("couponId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon updated", slog.String("couponId", id.String()))
		response.Success(w, http.StatusOK, coupon)
	}
}

// DeleteCoupon godoc
//	@Summary	Delete a coupon
//	@Tags		Coupons
//	@Param		id	path	string	true	"Coupon ID (UUID)"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Coupon not found"
//	@Security	BearerAuth
//	@Router		/coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "delete coupon")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.couponService.DeleteCoupon(r.Context(), id); err != nil {
			logger.Error("Failed to delete coupon", slog.String("couponId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon deleted", slog.String("couponId", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListCoupons godoc
//	@Summary		List coupons
//	@Description	Filters by code/name search, type and derived status, then pages.
//	@Tags			Coupons
//	@Produce		json
//	@Param			search		query		string	false	"Matches code or name"
//	@Param			type		query		string	false	"flat or percentage"
//	@Param			status		query		string	false	"scheduled, active or expired"
//	@Param			page		query		int		false	"Page number (default: 1)"				minimum(1)
//	@Param			pageSize	query		int		false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.CouponView}
//	@Failure		400			{object}	response.ErrorResponse	"Invalid filter"
//	@Security		BearerAuth
//	@Router			/coupons [get]
func (h *CouponHandler) ListCoupons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "list coupons")
		if !ok {
			return
		}

		page, pageSize := utils.ParsePagination(r)
		query := r.URL.Query()

		filter := models.CouponFilter{
			Search: query.Get("search"),
			Type:   models.CouponType(query.Get("type")),
			Status: models.CouponStatus(query.Get("status")),
			Page:   page,
			Size:   pageSize,
		}

		switch filter.Type {
		case "", models.CouponTypeFlat, models.CouponTypePercentage:
		default:
			response.Error(w, errors.ValidationError("Invalid coupon type").WithDetail(string(filter.Type)))
			return
		}

		switch filter.Status {
		case "", models.CouponStatusScheduled, models.CouponStatusActive, models.CouponStatusExpired:
		default:
			response.Error(w, errors.ValidationError("Invalid coupon status").WithDetail(string(filter.Status)))
			return
		}

		coupons, total, err := h.couponService.ListCoupons(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list coupons", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     coupons,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ApplyCoupon godoc
//	@Summary		Preview a coupon
//	@Description	Validates a code against an order amount and returns the discount. Nothing is consumed. Attempts are rate limited per user.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.ApplyCouponRequest	true	"Code and order amount"
//	@Success		200		{object}	models.ApplyCouponResponse
//	@Failure		400		{object}	response.ErrorResponse	"Coupon cannot be applied"
//	@Failure		404		{object}	response.ErrorResponse	"Coupon not found"
//	@Failure		429		{object}	response.ErrorResponse	"Too many attempts"
//	@Security		BearerAuth
//	@Router			/coupons/apply [post]
func (h *CouponHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "apply coupon")
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.couponService.ApplyCoupon(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Info("Coupon not applied", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// RecordUsage godoc
//	@Summary		Record a coupon redemption
//	@Description	Counts one use of the coupon by an order. Repeating the call for the same order changes nothing.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Coupon ID (UUID)"	Format(uuid)
//	@Param			redemption	body		models.RecordCouponUsageRequest	true	"Order that used the coupon"
//	@Success		200			{object}	map[string]bool
//	@Failure		400			{object}	response.ErrorResponse	"Order was not placed with this coupon"
//	@Failure		404			{object}	response.ErrorResponse	"Coupon or order not found"
//	@Failure		409			{object}	response.ErrorResponse	"Coupon usage limit reached"
//	@Security		BearerAuth
//	@Router			/coupons/{id}/redemptions [post]
func (h *CouponHandler) RecordUsage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "record coupon usage")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.RecordCouponUsageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		recorded, err := h.couponService.RecordUsage(r.Context(), id, req.OrderID)
		if err != nil {
			logger.Error("Failed to record coupon usage",
				slog.String("couponId", id.String()),
				slog.String("orderId", req.OrderID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"recorded": recorded})
	}
}

// Analytics godoc
//	@Summary	Coupon analytics
//	@Tags		Coupons
//	@Produce	json
//	@Success	200	{object}	models.CouponAnalytics
//	@Security	BearerAuth
//	@Router		/coupons/analytics [get]
func (h *CouponHandler) Analytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "coupon analytics")
		if !ok {
			return
		}

		analytics, err := h.couponService.Analytics(r.Context())
		if err != nil {
			logger.Error("Failed to compute coupon analytics", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, analytics)
	}
}
