package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// CreateProductInput carries the fields of a new catalog entry.
// A nil Price means the caller did not provide one.
type CreateProductInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Category    string
}

// ProductService defines catalog use cases.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
