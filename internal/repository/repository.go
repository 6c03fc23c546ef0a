package repository

import (
	"context"
	"errors"

	"urban-luxury/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// BrandRepository defines the interface for brand data access operations.
type BrandRepository interface {
	// List retrieves every brand, newest first.
	List(ctx context.Context) ([]model.Brand, error)

	// GetByID retrieves a single brand. It returns nil, nil when the brand does not exist.
	GetByID(ctx context.Context, id string) (*model.Brand, error)

	// Create inserts a brand. It returns model.ErrBrandExists when the ID is taken.
	Create(ctx context.Context, brand *model.Brand) error

	// Delete removes a brand and reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves every product, newest first.
	List(ctx context.Context) ([]model.Product, error)

	// ListByBrand retrieves the products whose brand ID matches.
	ListByBrand(ctx context.Context, brandID string) ([]model.Product, error)

	// CountByBrand returns the number of products per brand ID.
	CountByBrand(ctx context.Context) (map[string]int, error)

	// GetByID retrieves a single product. It returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a product.
	Create(ctx context.Context, product *model.Product) error

	// Delete removes a product and reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts an order.
	Create(ctx context.Context, order *model.Order) error

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetByOrderID retrieves an order by its public order ID.
	// It returns nil, nil when the order does not exist.
	GetByOrderID(ctx context.Context, orderID string) (*model.Order, error)

	// UpdateStatus sets the status of an order and returns the updated order.
	// It returns nil, nil when the order does not exist.
	UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error)
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
