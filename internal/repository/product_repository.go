package repository

import (
	"context"
	"errors"
	"fmt"

	"urban-luxury/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, brand_id, brand_name, product_type, product_name, description,
		sizes, mrp, offer_price, image_url, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves every product, newest first.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id
	`

	return r.queryProducts(ctx, query)
}

// ListByBrand retrieves the products of a single brand, newest first.
func (r *productRepository) ListByBrand(ctx context.Context, brandID string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE brand_id = $1
		ORDER BY created_at DESC, id
	`

	return r.queryProducts(ctx, query, brandID)
}

// CountByBrand returns the number of products per brand ID.
func (r *productRepository) CountByBrand(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT brand_id, COUNT(*)
		FROM products
		GROUP BY brand_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products by brand")
		return nil, fmt.Errorf("failed to count products by brand: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			brandID string
			count   int
		)
		if err := rows.Scan(&brandID, &count); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product count row")
			return nil, fmt.Errorf("failed to scan product count: %w", err)
		}
		counts[brandID] = count
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product count rows")
		return nil, fmt.Errorf("error iterating product counts: %w", err)
	}

	return counts, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// Create inserts a product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	id, err := uuid.Parse(product.ID)
	if err != nil {
		return fmt.Errorf("invalid product ID %q: %w", product.ID, err)
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		id,
		product.BrandID,
		product.BrandName,
		product.ProductType,
		product.ProductName,
		product.Description,
		product.Sizes,
		product.MRP,
		product.OfferPrice,
		product.ImageURL,
		product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", product.ID).
			Str("brand_id", product.BrandID).
			Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID).Msg("product created successfully")

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p  model.Product
		id uuid.UUID
	)
	err := row.Scan(
		&id,
		&p.BrandID,
		&p.BrandName,
		&p.ProductType,
		&p.ProductName,
		&p.Description,
		&p.Sizes,
		&p.MRP,
		&p.OfferPrice,
		&p.ImageURL,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	return &p, nil
}
