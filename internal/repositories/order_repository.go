package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStaleStatus       = errors.New("order status changed concurrently")
)

// OrderPlacement reports what happened to the coupon redemption of a committed order.
// CouponError is set when the redemption failed for a reason other than exhaustion; the
// order was still committed.
type OrderPlacement struct {
	CouponRecorded bool
	CouponError    error
}

type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order, couponID *uuid.UUID) (*OrderPlacement, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error)
	OrderStats(ctx context.Context) (map[models.OrderStatus]*models.StatusStat, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order, from models.OrderStatus) error
	SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error
	UpdatePaymentStatusByIntent(ctx context.Context, paymentIntentID string, status models.PaymentStatus) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, order_number, user_id, items, shipping_address, payment_method, subtotal, shipping_charge,
		tax, coupon_discount, coupon_code, total, status, payment_status, payment_intent_id, notes,
		estimated_delivery, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var itemsJSON, addressJSON []byte

	err := row.Scan(&order.ID, &order.OrderNumber, &order.UserID, &itemsJSON, &addressJSON, &order.PaymentMethod,
		&order.Summary.Subtotal, &order.Summary.ShippingCharge, &order.Summary.Tax, &order.Summary.CouponDiscount,
		&order.Summary.CouponCode, &order.Summary.Total, &order.Status, &order.PaymentStatus, &order.PaymentIntentID,
		&order.Notes, &order.EstimatedDelivery, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}

	return order, nil
}

// PlaceOrder persists a new order in one transaction: it draws the order number from the
// sequence, reserves stock, inserts the order and redeems the coupon when couponID is set.
// An exhausted coupon aborts the whole order. Any other redemption failure is rolled back to
// a savepoint so the order still commits, and is reported through OrderPlacement.
func (r *orderRepository) PlaceOrder(ctx context.Context, order *models.Order, couponID *uuid.UUID) (*OrderPlacement, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	placement := &OrderPlacement{}

	err = withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRowContext(dbCtx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("failed to draw order number: %w", err)
		}

		order.OrderNumber = models.FormatOrderNumber(seq)

		for _, item := range order.Items {
			if err := reserveStock(dbCtx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		insert := `
			INSERT INTO orders (id, order_number, user_id, items, shipping_address, payment_method, subtotal,
			shipping_charge, tax, coupon_discount, coupon_code, total, status, payment_status, notes, estimated_delivery)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING created_at, updated_at`

		err := tx.QueryRowContext(dbCtx, insert, order.ID, order.OrderNumber, order.UserID, itemsJSON, addressJSON,
			order.PaymentMethod, order.Summary.Subtotal, order.Summary.ShippingCharge, order.Summary.Tax,
			order.Summary.CouponDiscount, order.Summary.CouponCode, order.Summary.Total, order.Status,
			order.PaymentStatus, order.Notes, order.EstimatedDelivery).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		if couponID == nil {
			return nil
		}

		if _, err := tx.ExecContext(dbCtx, `SAVEPOINT coupon_redemption`); err != nil {
			return fmt.Errorf("failed to create savepoint: %w", err)
		}

		recorded, err := redeemCoupon(dbCtx, tx, *couponID, order.ID)
		if err != nil {
			if errors.Is(err, ErrCouponExhausted) {
				return err
			}

			if _, rbErr := tx.ExecContext(dbCtx, `ROLLBACK TO SAVEPOINT coupon_redemption`); rbErr != nil {
				return errors.Join(err, fmt.Errorf("failed to roll back to savepoint: %w", rbErr))
			}

			placement.CouponError = err

			return nil
		}

		if _, err := tx.ExecContext(dbCtx, `RELEASE SAVEPOINT coupon_redemption`); err != nil {
			return fmt.Errorf("failed to release savepoint: %w", err)
		}

		placement.CouponRecorded = recorded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return placement, nil
}

func reserveStock(ctx context.Context, tx *sql.Tx, productID uuid.UUID, quantity int) error {
	query := `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`

	result, err := tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%w for product %s", ErrInsufficientStock, productID)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	orders, err := r.queryOrders(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListOrders pages through all orders with an optional status and a search over the order
// number and recipient name.
func (r *orderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where := `WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR order_number ILIKE '%' || $2 || '%' OR shipping_address->>'fullName' ILIKE '%' || $2 || '%')`

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders `+where, string(filter.Status), filter.Search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (filter.Page - 1) * filter.Size

	query := `SELECT ` + orderColumns + ` FROM orders ` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	orders, err := r.queryOrders(dbCtx, query, string(filter.Status), filter.Search, filter.Size, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// OrderStats returns the count and summed total per status. Statuses with no orders are zero.
func (r *orderRepository) OrderStats(ctx context.Context) (map[models.OrderStatus]*models.StatusStat, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := make(map[models.OrderStatus]*models.StatusStat, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		stats[status] = &models.StatusStat{TotalValue: decimal.Zero}
	}

	rows, err := r.DB.QueryContext(dbCtx, `SELECT status, COUNT(*), COALESCE(SUM(total), 0) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status models.OrderStatus
			stat   models.StatusStat
		)

		if err := rows.Scan(&status, &stat.Count, &stat.TotalValue); err != nil {
			return nil, fmt.Errorf("failed to scan order stats: %w", err)
		}

		stats[status] = &stat
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// UpdateOrderStatus moves order to order.Status only if it is still in from.
// ErrStaleStatus means another writer changed it first.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order, from models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1, notes = CASE WHEN $2 = '' THEN notes ELSE $2 END, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING notes, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, order.Status, order.Notes, order.ID, from).Scan(&order.Notes, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStaleStatus
		}

		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

func (r *orderRepository) SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET payment_intent_id = $1, updated_at = NOW() WHERE id = $2`

	return execAffectingOne(dbCtx, r.DB, query, paymentIntentID, id)
}

func (r *orderRepository) UpdatePaymentStatusByIntent(ctx context.Context, paymentIntentID string, status models.PaymentStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE payment_intent_id = $2`

	return execAffectingOne(dbCtx, r.DB, query, status, paymentIntentID)
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return execAffectingOne(dbCtx, r.DB, `DELETE FROM orders WHERE id = $1`, id)
}

// execAffectingOne runs query and returns sql.ErrNoRows when nothing matched.
func execAffectingOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute update: %w", err)
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
