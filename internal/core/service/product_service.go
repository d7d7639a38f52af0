package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

// ProductService implements the catalog use cases. Role checks happen in the
// HTTP middleware; every method here assumes the caller was allowed through.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrProductNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price == nil {
		return nil, domain.NewValidationError("name and price are required")
	}
	if err := checkPrice(*input.Price); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        name,
		Description: input.Description,
		Price:       *input.Price,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// Update overwrites the provided fields and refreshes updated_at.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, domain.NewValidationError("name must not be empty")
		}
		patch.Name = &trimmed
	}
	if patch.Price != nil {
		if err := checkPrice(*patch.Price); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// Delete removes a product permanently. Quote requests pointing at it are not touched.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrProductNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError("price must not be negative")
	}
	if price.GreaterThanOrEqual(domain.MaxPrice) {
		return domain.NewValidationError("price must be less than " + domain.MaxPrice.String())
	}
	return nil
}
