package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"urban-luxury/internal/events"
	"urban-luxury/internal/model"
	"urban-luxury/internal/repository"
	"urban-luxury/internal/storage"

	"github.com/rs/zerolog"
)

// brandService implements BrandService.
type brandService struct {
	repo      repository.BrandRepository
	store     storage.Store
	publisher events.Publisher
	publicURL string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewBrandService creates a new brand service. publicURL is the origin used to
// build logo URLs.
func NewBrandService(
	repo repository.BrandRepository,
	store storage.Store,
	publisher events.Publisher,
	publicURL string,
	logger zerolog.Logger,
) BrandService {
	return &brandService{
		repo:      repo,
		store:     store,
		publisher: publisher,
		publicURL: publicURL,
		now:       time.Now,
		logger:    logger.With().Str("service", "brand").Logger(),
	}
}

// List retrieves every brand.
func (s *brandService) List(ctx context.Context) ([]model.Brand, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list brands")
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// Create stores the logo, then inserts the brand. The logo is removed again if
// the insert fails.
func (s *brandService) Create(ctx context.Context, input model.BrandInput, logo *Upload) (*model.Brand, error) {
	if logo == nil || logo.Body == nil {
		return nil, model.ErrMissingLogo
	}

	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	if input.ID == "" {
		return nil, model.MissingField("id")
	}
	if input.Name == "" {
		return nil, model.MissingField("name")
	}

	now := s.now()
	name, err := saveUpload(ctx, s.store, now, logo)
	if err != nil {
		s.logger.Error().Err(err).Str("brand_id", input.ID).Msg("failed to store brand logo")
		return nil, err
	}

	brand := &model.Brand{
		ID:          input.ID,
		Name:        input.Name,
		Logo:        storage.PublicURL(s.publicURL, name),
		Description: input.Description,
		CreatedAt:   now.UTC(),
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		removeUpload(ctx, s.store, name, s.logger)
		if _, ok := model.AsDomainError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.logger.Info().
		Str("brand_id", brand.ID).
		Str("logo", name).
		Msg("brand created successfully")

	s.publisher.Publish(ctx, events.BrandsUpdated)

	return brand, nil
}

// Delete removes the brand record, then its logo. Products referencing the
// brand are kept.
func (s *brandService) Delete(ctx context.Context, id string) error {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get brand: %w", err)
	}
	if brand == nil {
		return model.ErrBrandNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if !deleted {
		return model.ErrBrandNotFound
	}

	removeUpload(ctx, s.store, storage.NameFromURL(brand.Logo), s.logger)

	s.logger.Info().Str("brand_id", id).Msg("brand deleted")

	s.publisher.Publish(ctx, events.BrandsUpdated)

	return nil
}
