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

var (
	ErrDuplicateCouponCode = errors.New("coupon code already exists")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrUnknownOrder        = errors.New("order does not exist")
	ErrUnknownCoupon       = errors.New("coupon does not exist")
)

const redemptionCouponFK = "coupon_redemptions_coupon_id_fkey"

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon *models.Coupon) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context, search string, couponType models.CouponType) ([]*models.Coupon, error)
	RecordUsage(ctx context.Context, couponID, orderID uuid.UUID) (bool, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

const couponColumns = `id, code, name, type, amount, min_value, max_value, usage_limit, used_count,
		start_date, expiry_date, is_active, created_at, updated_at`

func scanCoupon(row rowScanner) (*models.Coupon, error) {
	coupon := &models.Coupon{}

	var startDate, expiryDate sql.NullTime

	err := row.Scan(&coupon.ID, &coupon.Code, &coupon.Name, &coupon.Type, &coupon.Amount, &coupon.MinValue,
		&coupon.MaxValue, &coupon.UsageLimit, &coupon.UsedCount, &startDate, &expiryDate, &coupon.IsActive,
		&coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		coupon.StartDate = &startDate.Time
	}

	if expiryDate.Valid {
		coupon.ExpiryDate = &expiryDate.Time
	}

	return coupon, nil
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO coupons (code, name, type, amount, min_value, max_value, usage_limit, start_date, expiry_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, used_count, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, coupon.Code, coupon.Name, coupon.Type, coupon.Amount, coupon.MinValue,
		coupon.MaxValue, coupon.UsageLimit, coupon.StartDate, coupon.ExpiryDate, coupon.IsActive).
		Scan(&coupon.ID, &coupon.UsedCount, &coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCouponCode
		}

		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	coupon, err := scanCoupon(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

// GetCouponByCode expects an already normalised code.
func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := scanCoupon(r.DB.QueryRowContext(dbCtx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

// UpdateCoupon writes every editable column. used_count is only changed by RecordUsage.
func (r *couponRepository) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE coupons SET name = $1, type = $2, amount = $3, min_value = $4, max_value = $5, usage_limit = $6,
		start_date = $7, expiry_date = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING used_count, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, coupon.Name, coupon.Type, coupon.Amount, coupon.MinValue, coupon.MaxValue,
		coupon.UsageLimit, coupon.StartDate, coupon.ExpiryDate, coupon.IsActive, coupon.ID).
		Scan(&coupon.UsedCount, &coupon.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
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

// ListCoupons filters by a case-insensitive code/name search and type. Status is derived by the caller.
func (r *couponRepository) ListCoupons(ctx context.Context, search string, couponType models.CouponType) ([]*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + couponColumns + ` FROM coupons
		WHERE ($1 = '' OR code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, search, string(couponType))
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []*models.Coupon{}

	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}

		coupons = append(coupons, coupon)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}

// RecordUsage counts one redemption of couponID by orderID. It reports false when the
// redemption was already recorded, and ErrCouponExhausted when the limit is reached.
func (r *couponRepository) RecordUsage(ctx context.Context, couponID, orderID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var recorded bool

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		var err error
		recorded, err = redeemCoupon(dbCtx, tx, couponID, orderID)

		return err
	})
	if err != nil {
		return false, err
	}

	return recorded, nil
}

// redeemCoupon inserts the (coupon, order) redemption row and increments used_count only
// if the row is new and the coupon still has room.
func redeemCoupon(ctx context.Context, tx *sql.Tx, couponID, orderID uuid.UUID) (bool, error) {
	insert := `
		INSERT INTO coupon_redemptions (coupon_id, order_id)
		VALUES ($1, $2)
		ON CONFLICT (coupon_id, order_id) DO NOTHING`

	result, err := tx.ExecContext(ctx, insert, couponID, orderID)
	if err != nil {
		if constraint, ok := violatedForeignKey(err); ok {
			if constraint == redemptionCouponFK {
				return false, ErrUnknownCoupon
			}

			return false, ErrUnknownOrder
		}

		return false, fmt.Errorf("failed to insert coupon redemption: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if inserted == 0 {
		return false, nil
	}

	increment := `
		UPDATE coupons SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND is_active AND used_count < usage_limit`

	result, err = tx.ExecContext(ctx, increment, couponID)
	if err != nil {
		return false, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if updated == 0 {
		return false, ErrCouponExhausted
	}

	return true, nil
}
