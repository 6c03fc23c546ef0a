package service

import (
	"context"
	"io"

	"urban-luxury/internal/model"
)

// Upload is a file received with a create request.
type Upload struct {
	// Filename is the client-supplied name of the file.
	Filename string
	Body     io.Reader
}

// BrandService defines operations for brand management.
type BrandService interface {
	// List retrieves every brand, newest first.
	List(ctx context.Context) ([]model.Brand, error)

	// Create stores the logo and inserts the brand.
	Create(ctx context.Context, input model.BrandInput, logo *Upload) (*model.Brand, error)

	// Delete removes the brand and then its logo.
	Delete(ctx context.Context, id string) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves every product, newest first.
	List(ctx context.Context) ([]model.Product, error)

	// ListByBrand retrieves the products of one brand.
	ListByBrand(ctx context.Context, brandID string) ([]model.Product, error)

	// CountsByBrand returns the number of products per brand ID.
	CountsByBrand(ctx context.Context) (map[string]int, error)

	// Create stores the image and inserts the product.
	Create(ctx context.Context, input model.ProductInput, image *Upload) (*model.Product, error)

	// Delete removes the product and then its image.
	Delete(ctx context.Context, id string) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create places a new order.
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetByOrderID retrieves a single order.
	GetByOrderID(ctx context.Context, orderID string) (*model.Order, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error)
}
