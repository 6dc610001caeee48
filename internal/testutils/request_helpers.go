package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/google/uuid"
)

func CreateTestRequestWithContext(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	return createRequestWithClaims(method, target, body, &models.Claims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   models.RoleCustomer,
	}, pathParams)
}

// CreateAdminTestRequest builds a request authenticated as an admin.
func CreateAdminTestRequest(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	return createRequestWithClaims(method, target, body, &models.Claims{
		UserID: userID,
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
	}, pathParams)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	ctx := context.WithValue(req.Context(), middleware.LoggerKey, discardLogger())

	return req.WithContext(ctx)
}

func createRequestWithClaims(method, target string, body io.Reader, claims *models.Claims, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = context.WithValue(ctx, middleware.LoggerKey, discardLogger())

	return req.WithContext(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
