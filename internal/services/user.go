package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, page, size int) ([]*models.User, int, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
	DeleteUser(ctx context.Context, claims *models.Claims, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser provisions a user issued by the identity provider, starting with an empty cart.
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.User{
		ID:    req.ID,
		Name:  utils.Sanitize(req.Name),
		Email: normalizeEmail(req.Email),
		Role:  role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, appErrors.DuplicateEntryError("Email already registered").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) ListUsers(ctx context.Context, page, size int) ([]*models.User, int, error) {
	users, total, err := s.repo.ListUsers(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch users").WithError(err)
	}

	return users, total, nil
}

// UpdateProfile applies the fields present in req. The role cannot be changed by its owner.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := utils.Sanitize(*req.Name)
		if name == "" {
			return nil, appErrors.ValidationError("Name cannot be empty")
		}

		user.Name = name
	}

	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, appErrors.DuplicateEntryError("Email already registered").WithError(err)
		default:
			return nil, appErrors.DatabaseError("Failed to update profile").WithError(err)
		}
	}

	return user, nil
}

// DeleteUser removes an account on behalf of an admin. Admins cannot remove themselves,
// and customers with order history are kept so their orders stay attributable.
func (s *userService) DeleteUser(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	if claims.UserID == id {
		return appErrors.ValidationError("Admins cannot delete their own account")
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.NotFoundError("User not found").WithError(err)
		case errors.Is(err, repository.ErrUserHasOrders):
			return appErrors.ConflictError("User has placed orders and cannot be deleted").WithError(err)
		default:
			return appErrors.DatabaseError("Failed to delete user").WithError(err)
		}
	}

	return nil
}
