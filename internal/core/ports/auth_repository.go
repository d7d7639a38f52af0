package ports

import (
	"context"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// AuthRepository defines the credential store.
type AuthRepository interface {
	// Create persists a new user and returns it with its generated ID.
	// Returns domain.ErrEmailExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
