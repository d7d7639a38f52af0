package ports

import (
	"context"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// AuthService issues session tokens for registered users.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, identity domain.Identity) (*domain.User, error)
}
