package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront-backend/internal/config"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

//go:embed schema.sql
var schema string

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Repository struct {
	DB       *sql.DB
	User     UserRepository
	Cart     CartRepository
	Product  ProductRepository
	Coupon   CouponRepository
	Shipping ShippingRepository
	Order    OrderRepository
	Address  AddressRepository
	Invoice  InvoiceRepository
}

func New(cfg *config.Config) (*Repository, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}

		slog.Info("Database schema applied")
	}

	return NewRepository(db), nil
}

// NewRepository wires every repository over an open pool.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:       db,
		User:     NewUserRepo(db),
		Cart:     NewCartRepo(db),
		Product:  NewProductRepo(db),
		Coupon:   NewCouponRepo(db),
		Shipping: NewShippingRepo(db),
		Order:    NewOrderRepo(db),
		Address:  NewAddressRepo(db),
		Invoice:  NewInvoiceRepo(db),
	}
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// violatedForeignKey returns the constraint name when err is a foreign key violation.
func violatedForeignKey(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return pqErr.Constraint, true
	}

	return "", false
}
