package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

// AddressRepository is scoped by user: an address owned by someone else behaves as missing.
type AddressRepository interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.SavedAddress, error)
	CreateAddress(ctx context.Context, address *models.SavedAddress) error
	UpdateAddress(ctx context.Context, address *models.SavedAddress) error
	DeleteAddress(ctx context.Context, userID, id uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error)
}

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepo(db *sql.DB) AddressRepository {
	return &addressRepository{DB: db}
}

const addressColumns = `id, user_id, full_name, phone, street, city, state, postal_code, country, is_default, created_at, updated_at`

func scanAddress(row rowScanner) (*models.SavedAddress, error) {
	address := &models.SavedAddress{}

	err := row.Scan(&address.ID, &address.UserID, &address.FullName, &address.Phone, &address.Street, &address.City,
		&address.State, &address.PostalCode, &address.Country, &address.IsDefault, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return address, nil
}

// clearDefault unsets the default flag on every address of the user except keep.
func clearDefault(ctx context.Context, tx *sql.Tx, userID, keep uuid.UUID) error {
	query := `
		UPDATE addresses SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default AND id <> $2`

	if _, err := tx.ExecContext(ctx, query, userID, keep); err != nil {
		return fmt.Errorf("failed to clear default address: %w", err)
	}

	return nil
}

// ListAddresses returns the default address first, then the newest.
func (r *addressRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.SavedAddress, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + addressColumns + ` FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC, id`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*models.SavedAddress{}

	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}

		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.SavedAddress) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		if address.IsDefault {
			if err := clearDefault(dbCtx, tx, address.UserID, address.ID); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO addresses (id, user_id, full_name, phone, street, city, state, postal_code, country, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at`

		err := tx.QueryRowContext(dbCtx, query, address.ID, address.UserID, address.FullName, address.Phone, address.Street,
			address.City, address.State, address.PostalCode, address.Country, address.IsDefault).
			Scan(&address.CreatedAt, &address.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert address: %w", err)
		}

		return nil
	})
}

// UpdateAddress rewrites the address fields. sql.ErrNoRows means the user has no such address.
func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.SavedAddress) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		if address.IsDefault {
			if err := clearDefault(dbCtx, tx, address.UserID, address.ID); err != nil {
				return err
			}
		}

		query := `
			UPDATE addresses
			SET full_name = $3, phone = $4, street = $5, city = $6, state = $7, postal_code = $8, country = $9,
				is_default = $10, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING created_at, updated_at`

		err := tx.QueryRowContext(dbCtx, query, address.ID, address.UserID, address.FullName, address.Phone, address.Street,
			address.City, address.State, address.PostalCode, address.Country, address.IsDefault).
			Scan(&address.CreatedAt, &address.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return err
			}

			return fmt.Errorf("failed to update address: %w", err)
		}

		return nil
	})
}

func (r *addressRepository) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// SetDefaultAddress moves the default flag to id in one transaction.
func (r *addressRepository) SetDefaultAddress(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var address *models.SavedAddress

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		if err := clearDefault(dbCtx, tx, userID, id); err != nil {
			return err
		}

		query := `
			UPDATE addresses SET is_default = TRUE, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING ` + addressColumns

		var err error

		address, err = scanAddress(tx.QueryRowContext(dbCtx, query, id, userID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return err
			}

			return fmt.Errorf("failed to set default address: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}
