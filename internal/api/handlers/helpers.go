package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
)

// requireClaims writes a 401 when the request carries no authenticated user.
func requireClaims(w http.ResponseWriter, r *http.Request, action string) (*models.Claims, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized attempt: missing user claims", slog.String("action", action))
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, logger, false
	}

	return claims, logger.With(slog.String("userId", claims.UserID.String())), true
}
