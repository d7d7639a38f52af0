package ports

import (
	"context"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	// List returns every product, newest first.
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Update applies patch and sets updated_at in a single statement and returns
	// the stored record. Returns domain.ErrProductNotFound when no row matched.
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	// Delete removes the product. Quote requests referencing it are left untouched.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
