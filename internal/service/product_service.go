package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"urban-luxury/internal/events"
	"urban-luxury/internal/model"
	"urban-luxury/internal/repository"
	"urban-luxury/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo      repository.ProductRepository
	store     storage.Store
	publisher events.Publisher
	publicURL string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	repo repository.ProductRepository,
	store storage.Store,
	publisher events.Publisher,
	publicURL string,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		repo:      repo,
		store:     store,
		publisher: publisher,
		publicURL: publicURL,
		now:       time.Now,
		logger:    logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListByBrand retrieves the products of one brand.
func (s *productService) ListByBrand(ctx context.Context, brandID string) ([]model.Product, error) {
	products, err := s.repo.ListByBrand(ctx, brandID)
	if err != nil {
		s.logger.Error().Err(err).Str("brand_id", brandID).Msg("failed to list brand products")
		return nil, fmt.Errorf("failed to list products for brand %s: %w", brandID, err)
	}
	return products, nil
}

// CountsByBrand returns the number of products per brand ID.
func (s *productService) CountsByBrand(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.CountByBrand(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products by brand: %w", err)
	}
	return counts, nil
}

// Create stores the image, then inserts the product.
func (s *productService) Create(ctx context.Context, input model.ProductInput, image *Upload) (*model.Product, error) {
	if image == nil || image.Body == nil {
		return nil, model.ErrMissingImage
	}

	input.BrandID = strings.TrimSpace(input.BrandID)
	input.ProductName = strings.TrimSpace(input.ProductName)
	if input.BrandID == "" {
		return nil, model.MissingField("brandId")
	}
	if input.ProductName == "" {
		return nil, model.MissingField("productName")
	}

	mrp, ok := normalisePrice(input.MRP)
	if !ok {
		return nil, model.ErrInvalidPrice
	}
	offerPrice, ok := normalisePrice(input.OfferPrice)
	if !ok {
		return nil, model.ErrInvalidPrice
	}

	sizes := input.Sizes
	if sizes == nil {
		sizes = []string{}
	}

	now := s.now()
	name, err := saveUpload(ctx, s.store, now, image)
	if err != nil {
		s.logger.Error().Err(err).Str("brand_id", input.BrandID).Msg("failed to store product image")
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		BrandID:     input.BrandID,
		BrandName:   input.BrandName,
		ProductType: input.ProductType,
		ProductName: input.ProductName,
		Description: input.Description,
		Sizes:       sizes,
		MRP:         mrp,
		OfferPrice:  offerPrice,
		ImageURL:    storage.PublicURL(s.publicURL, name),
		CreatedAt:   now.UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		removeUpload(ctx, s.store, name, s.logger)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("brand_id", product.BrandID).
		Msg("product created successfully")

	s.publisher.Publish(ctx, events.ProductsUpdated)

	return product, nil
}

// Delete removes the product record, then its image. A missing image is ignored.
func (s *productService) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return model.ErrProductNotFound
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	deleted, err := s.repo.Delete(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	removeUpload(ctx, s.store, storage.NameFromURL(product.ImageURL), s.logger)

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	s.publisher.Publish(ctx, events.ProductsUpdated)

	return nil
}

// maxPrice is the largest value a NUMERIC(10,2) price column holds.
const maxPrice = 99999999.99

// normalisePrice rounds p to cents, the precision prices are stored at, and
// reports whether the result fits the price columns.
func normalisePrice(p float64) (float64, bool) {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	rounded := math.Round(p*100) / 100
	if rounded < 0 || rounded > maxPrice {
		return 0, false
	}
	return rounded, true
}
