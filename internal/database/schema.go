package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SchemaSQL creates the storefront tables. Every statement is idempotent.
//
// products.brand_id intentionally carries no foreign key: catalogue clients
// merge a static brand list whose entries never exist in the brands table.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS brands (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	logo TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	brand_id TEXT NOT NULL,
	brand_name TEXT NOT NULL DEFAULT '',
	product_type TEXT NOT NULL DEFAULT '',
	product_name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	sizes TEXT[] NOT NULL DEFAULT '{}',
	mrp NUMERIC(10,2) NOT NULL DEFAULT 0,
	offer_price NUMERIC(10,2) NOT NULL DEFAULT 0,
	image_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	order_id TEXT NOT NULL UNIQUE,
	product JSONB NOT NULL,
	user_info JSONB NOT NULL,
	payment_method TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Order Placed',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_user_email ON orders((lower(user_info->>'email')));
`

// Migrate applies SchemaSQL to the database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, SchemaSQL); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema applied")

	return nil
}
