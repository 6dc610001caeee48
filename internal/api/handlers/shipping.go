package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ShippingHandler struct {
	shippingService service.ShippingService
	validator       *validator.Validate
}

func NewShippingHandler(shippingService service.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService, validator: utils.NewValidator()}
}

// CalculateRate godoc
//	@Summary		Shipping charge for a zip code
//	@Tags			Shipping
//	@Produce		json
//	@Param			zipCode	path		string	true	"Destination zip code"
//	@Success		200		{object}	models.ShippingQuote
//	@Failure		404		{object}	response.ErrorResponse	"No shipping rule for zip code"
//	@Router			/shipping/rates/{zipCode} [get]
func (h *ShippingHandler) CalculateRate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		zipCode := r.PathValue("zipCode")

		quote, err := h.shippingService.Calculate(r.Context(), zipCode)
		if err != nil {
			logger.Info("Shipping rate lookup failed", slog.String("zipCode", zipCode), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

// CreateRule godoc
//	@Summary	Add a shipping rule
//	@Tags		Shipping
//	@Accept		json
//	@Produce	json
//	@Param		rule	body		models.CreateShippingRuleRequest	true	"Zip code, state and charge"
//	@Success	201		{object}	models.ShippingRule
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	409		{object}	response.ErrorResponse	"A rule already exists for this zip code"
//	@Security	BearerAuth
//	@Router		/shipping/rules [post]
func (h *ShippingHandler) CreateRule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "create shipping rule")
		if !ok {
			return
		}

		var req models.CreateShippingRuleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		rule, err := h.shippingService.CreateRule(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create shipping rule", slog.String("zipCode", req.ZipCode), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Shipping rule created", slog.String("zipCode", rule.ZipCode))
		response.Success(w, http.StatusCreated, rule)
	}
}

// ListRules godoc
//	@Summary	List shipping rules
//	@Tags		Shipping
//	@Produce	json
//	@Success	200	{array}	models.ShippingRule
//	@Security	BearerAuth
//	@Router		/shipping/rules [get]
func (h *ShippingHandler) ListRules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "list shipping rules")
		if !ok {
			return
		}

		rules, err := h.shippingService.ListRules(r.Context())
		if err != nil {
			logger.Error("Failed to list shipping rules", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, rules)
	}
}

// DeleteRule godoc
//	@Summary	Delete a shipping rule
//	@Tags		Shipping
//	@Param		id	path	string	true	"Rule ID (UUID)"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Shipping rule not found"
//	@Security	BearerAuth
//	@Router		/shipping/rules/{id} [delete]
func (h *ShippingHandler) DeleteRule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "delete shipping rule")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.shippingService.DeleteRule(r.Context(), id); err != nil {
			logger.Error("Failed to delete shipping rule", slog.String("ruleId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteRulesByState godoc
//	@Summary	Delete every shipping rule of a state
//	@Tags		Shipping
//	@Produce	json
//	@Param		stateCode	path		string	true	"State code, e.g. KA"
//	@Success	200			{object}	map[string]int
//	@Failure	404			{object}	response.ErrorResponse	"No shipping rules for state"
//	@Security	BearerAuth
//	@Router		/shipping/states/{stateCode}/rules [delete]
func (h *ShippingHandler) DeleteRulesByState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "delete state shipping rules")
		if !ok {
			return
		}

		stateCode := r.PathValue("stateCode")

		deleted, err := h.shippingService.DeleteRulesByState(r.Context(), stateCode)
		if err != nil {
			logger.Error("Failed to delete shipping rules", slog.String("stateCode", stateCode), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int{"deleted": deleted})
	}
}
