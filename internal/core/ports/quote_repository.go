package ports

import (
	"context"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// QuoteRepository defines persistence operations for quote requests.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error)
	// List returns joined quote views, newest first. When clientID is non-empty
	// only that client's requests are returned.
	List(ctx context.Context, clientID string) ([]*domain.QuoteView, error)
	// UpdateStatus overwrites the status. Returns domain.ErrQuoteNotFound when no row matched.
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error
}

// IdempotencyStore remembers which quote request a client's idempotency key produced.
// A key is reserved before the request is created, completed with the new id,
// and released if creation fails.
type IdempotencyStore interface {
	// Reserve claims key for the client. When the key is already claimed,
	// reserved is false and quoteID is the remembered id, or empty while the
	// first request is still in flight.
	Reserve(ctx context.Context, clientID, key string) (reserved bool, quoteID string, err error)
	Complete(ctx context.Context, clientID, key, quoteID string) error
	Release(ctx context.Context, clientID, key string) error
}
