package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-backend/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)
		newID := uuid.New()

		userService.On("CreateUser", mock.Anything, &models.CreateUserRequest{
			ID: newID, Name: "Asha Rao", Email: "asha@example.com",
		}).Return(&models.User{ID: newID, Email: "asha@example.com", Role: models.RoleCustomer}, nil).Once()

		body := jsonBody(t, map[string]any{"id": newID, "name": "Asha Rao", "email": "asha@example.com"})
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/admin/users", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateUser()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		// Arrange
		handler := handlers.NewUserHandler(mocks.NewUserService(t))

		body := jsonBody(t, map[string]any{"id": uuid.New(), "name": "Asha Rao", "email": "not-an-email"})
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/admin/users", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateUser()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Contains(t, resp.Error.Details, "Field Email must be a valid email address")
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		body := jsonBody(t, map[string]any{"id": uuid.New(), "name": "Asha Rao", "email": "asha@example.com"})
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/admin/users", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.CreateUser()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestUserHandler_Profile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)
		userID := uuid.New()

		userService.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Name: "Asha Rao"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/me", nil, userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.Profile()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)

		var user models.User
		decodeData(t, decodeResponse(t, recorder), &user)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		handler := handlers.NewUserHandler(mocks.NewUserService(t))
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/users/me", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.Profile()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)
		userID := uuid.New()

		userService.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(req *models.UpdateProfileRequest) bool {
			return req.Name != nil && *req.Name == "Asha Rao" && req.Email == nil
		})).Return(&models.User{ID: userID, Name: "Asha Rao"}, nil).Once()

		body := jsonBody(t, map[string]any{"name": "Asha Rao"})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/users/me", body, userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateProfile()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)

		var user models.User
		decodeData(t, decodeResponse(t, recorder), &user)
		assert.Equal(t, "Asha Rao", user.Name)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		// Arrange
		handler := handlers.NewUserHandler(mocks.NewUserService(t))

		body := jsonBody(t, map[string]any{"email": "not-an-email"})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/users/me", body, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateProfile()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("Success - Paginated", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("ListUsers", mock.Anything, 2, 5).
			Return([]*models.User{{ID: uuid.New(), Name: "Ravi"}}, 6, nil).Once()

		req := testutils.CreateAdminTestRequest(http.MethodGet, "/api/v1/admin/users?page=2&pageSize=5", nil, uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.ListUsers()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)

		var page models.PaginatedResponse
		decodeData(t, decodeResponse(t, recorder), &page)
		assert.Equal(t, 6, page.Total)
		assert.Equal(t, 2, page.Page)
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)
		target := uuid.New()

		userService.On("DeleteUser", mock.Anything, mock.Anything, target).Return(nil).Once()

		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/admin/users/"+target.String(), nil, uuid.New(),
			map[string]string{"id": target.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.DeleteUser()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("Failure - Has Orders", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)
		target := uuid.New()

		userService.On("DeleteUser", mock.Anything, mock.Anything, target).
			Return(appErrors.ConflictError("User has placed orders and cannot be deleted")).Once()

		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/admin/users/"+target.String(), nil, uuid.New(),
			map[string]string{"id": target.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler.DeleteUser()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		handler := handlers.NewUserHandler(mocks.NewUserService(t))

		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/admin/users/abc", nil, uuid.New(),
			map[string]string{"id": "abc"})
		recorder := httptest.NewRecorder()

		// Act
		handler.DeleteUser()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
