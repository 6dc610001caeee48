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

var ErrDuplicateZipCode = errors.New("a shipping rule already exists for this zip code")

type ShippingRepository interface {
	CreateRule(ctx context.Context, rule *models.ShippingRule) error
	GetRuleByZip(ctx context.Context, zipCode string) (*models.ShippingRule, error)
	GetRuleByID(ctx context.Context, id uuid.UUID) (*models.ShippingRule, error)
	ListRules(ctx context.Context) ([]*models.ShippingRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
	DeleteRulesByState(ctx context.Context, stateCode string) ([]string, error)
}

type shippingRepository struct {
	DB *sql.DB
}

func NewShippingRepo(db *sql.DB) ShippingRepository {
	return &shippingRepository{DB: db}
}

const shippingColumns = `id, zip_code, state, state_code, gst_code, charges, price_less_than, created_at, updated_at`

func scanShippingRule(row rowScanner) (*models.ShippingRule, error) {
	rule := &models.ShippingRule{}

	err := row.Scan(&rule.ID, &rule.ZipCode, &rule.State, &rule.StateCode, &rule.GSTCode, &rule.Charges,
		&rule.PriceLessThan, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *shippingRepository) CreateRule(ctx context.Context, rule *models.ShippingRule) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO shipping_rules (zip_code, state, state_code, gst_code, charges, price_less_than)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, rule.ZipCode, rule.State, rule.StateCode, rule.GSTCode, rule.Charges,
		rule.PriceLessThan).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateZipCode
		}

		return fmt.Errorf("failed to insert shipping rule: %w", err)
	}

	return nil
}

func (r *shippingRepository) GetRuleByZip(ctx context.Context, zipCode string) (*models.ShippingRule, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + shippingColumns + ` FROM shipping_rules WHERE zip_code = $1`

	rule, err := scanShippingRule(r.DB.QueryRowContext(dbCtx, query, zipCode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get shipping rule: %w", err)
	}

	return rule, nil
}

func (r *shippingRepository) GetRuleByID(ctx context.Context, id uuid.UUID) (*models.ShippingRule, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + shippingColumns + ` FROM shipping_rules WHERE id = $1`

	rule, err := scanShippingRule(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get shipping rule: %w", err)
	}

	return rule, nil
}

func (r *shippingRepository) ListRules(ctx context.Context) ([]*models.ShippingRule, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + shippingColumns + ` FROM shipping_rules ORDER BY state_code, zip_code`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping rules: %w", err)
	}
	defer rows.Close()

	rules := []*models.ShippingRule{}

	for rows.Next() {
		rule, err := scanShippingRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipping rule: %w", err)
		}

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *shippingRepository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM shipping_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shipping rule: %w", err)
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

// DeleteRulesByState removes every rule of a state and returns the zip codes it removed.
func (r *shippingRepository) DeleteRulesByState(ctx context.Context, stateCode string) ([]string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `DELETE FROM shipping_rules WHERE state_code = $1 RETURNING zip_code`, stateCode)
	if err != nil {
		return nil, fmt.Errorf("failed to delete shipping rules: %w", err)
	}
	defer rows.Close()

	zipCodes := []string{}

	for rows.Next() {
		var zip string
		if err := rows.Scan(&zip); err != nil {
			return nil, fmt.Errorf("failed to scan deleted zip code: %w", err)
		}

		zipCodes = append(zipCodes, zip)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return zipCodes, nil
}
