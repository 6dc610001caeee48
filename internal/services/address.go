package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront-backend/internal/errors"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type AddressService interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.SavedAddress, error)
	AddAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.SavedAddress, error)
	UpdateAddress(ctx context.Context, userID, id uuid.UUID, req *models.AddressRequest) (*models.SavedAddress, error)
	DeleteAddress(ctx context.Context, userID, id uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error)
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func sanitizeAddressRequest(req *models.AddressRequest) models.Address {
	address := req.ToAddress()

	address.FullName = utils.Sanitize(address.FullName)
	address.Phone = utils.Sanitize(address.Phone)
	address.Street = utils.Sanitize(address.Street)
	address.City = utils.Sanitize(address.City)
	address.State = utils.Sanitize(address.State)

	return address
}

func addressNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError("Address not found").WithError(err)
	}

	return nil
}

func (s *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.SavedAddress, error) {
	addresses, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch addresses").WithError(err)
	}

	return addresses, nil
}

func (s *addressService) AddAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.SavedAddress, error) {
	address := &models.SavedAddress{
		ID:        uuid.New(),
		UserID:    userID,
		Address:   sanitizeAddressRequest(req),
		IsDefault: req.IsDefault,
	}

	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, appErrors.DatabaseError("Failed to save address").WithError(err)
	}

	return address, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID, id uuid.UUID, req *models.AddressRequest) (*models.SavedAddress, error) {
	address := &models.SavedAddress{
		ID:        id,
		UserID:    userID,
		Address:   sanitizeAddressRequest(req),
		IsDefault: req.IsDefault,
	}

	if err := s.repo.UpdateAddress(ctx, address); err != nil {
		if notFound := addressNotFound(err); notFound != nil {
			return nil, notFound
		}

		return nil, appErrors.DatabaseError("Failed to update address").WithError(err)
	}

	return address, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteAddress(ctx, userID, id); err != nil {
		if notFound := addressNotFound(err); notFound != nil {
			return notFound
		}

		return appErrors.DatabaseError("Failed to delete address").WithError(err)
	}

	return nil
}

func (s *addressService) SetDefaultAddress(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error) {
	address, err := s.repo.SetDefaultAddress(ctx, userID, id)
	if err != nil {
		if notFound := addressNotFound(err); notFound != nil {
			return nil, notFound
		}

		return nil, appErrors.DatabaseError("Failed to set default address").WithError(err)
	}

	return address, nil
}
