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
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, size int, category string) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, description, price, original_price, images, category, stock, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var imagesJSON []byte

	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.OriginalPrice,
		&imagesJSON, &product.Category, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product images: %w", err)
		}
	}

	return product, nil
}

func marshalImages(images []models.Image) ([]byte, error) {
	if images == nil {
		images = []models.Image{}
	}

	return json.Marshal(images)
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := marshalImages(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	query := `
		INSERT INTO products (name, description, price, original_price, images, category, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.OriginalPrice,
		imagesJSON, product.Category, product.Stock).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

// GetProductsByIDs loads every existing product among ids in one round trip.
// Missing ids are simply absent from the result.
func (r *productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	products := make(map[uuid.UUID]*models.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products[product.ID] = product
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := marshalImages(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	query := `
		UPDATE products SET name = $1, description = $2, price = $3, original_price = $4, images = $5,
		category = $6, stock = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.OriginalPrice,
		imagesJSON, product.Category, product.Stock, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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

// ListProducts pages through products, newest first. An empty category lists everything.
func (r *productRepository) ListProducts(ctx context.Context, page, size int, category string) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, category).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, category, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
