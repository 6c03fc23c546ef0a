package repository

import (
	"context"
	"errors"
	"fmt"

	"urban-luxury/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// brandRepository implements the BrandRepository interface using PostgreSQL.
type brandRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool *pgxpool.Pool, logger zerolog.Logger) BrandRepository {
	return &brandRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "brand").Logger(),
	}
}

// List retrieves every brand, newest first.
func (r *brandRepository) List(ctx context.Context) ([]model.Brand, error) {
	query := `
		SELECT id, name, logo, description, created_at
		FROM brands
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query brands")
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Logo, &b.Description, &b.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan brand row")
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating brand rows")
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

// GetByID retrieves a single brand by its ID.
func (r *brandRepository) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	query := `
		SELECT id, name, logo, description, created_at
		FROM brands
		WHERE id = $1
	`

	var b model.Brand
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Logo, &b.Description, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("brand_id", id).Msg("brand not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("brand_id", id).Msg("failed to query brand")
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	return &b, nil
}

// Create inserts a brand.
func (r *brandRepository) Create(ctx context.Context, brand *model.Brand) error {
	query := `
		INSERT INTO brands (id, name, logo, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, brand.ID, brand.Name, brand.Logo, brand.Description, brand.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("brand_id", brand.ID).Msg("brand already exists")
			return model.ErrBrandExists
		}
		r.logger.Error().Err(err).Str("brand_id", brand.ID).Msg("failed to create brand")
		return fmt.Errorf("failed to create brand: %w", err)
	}

	r.logger.Debug().Str("brand_id", brand.ID).Msg("brand created successfully")

	return nil
}

// Delete removes a brand.
func (r *brandRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("brand_id", id).Msg("failed to delete brand")
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
