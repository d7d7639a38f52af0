package ports

import (
	"context"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// SubmitQuoteInput is the DTO passed from the transport layer to QuoteService.Submit.
// The requesting client is never part of the input; it comes from the identity.
type SubmitQuoteInput struct {
	ProductID      string
	Quantity       int
	Message        string
	IdempotencyKey string
}

// SubmitQuoteResult is returned after a quote request is stored.
type SubmitQuoteResult struct {
	ID string
	// AlreadyExisted is true when the idempotency key matched an earlier submission.
	AlreadyExisted bool
}

// QuoteService defines quote request use cases.
type QuoteService interface {
	Submit(ctx context.Context, identity domain.Identity, input SubmitQuoteInput) (*SubmitQuoteResult, error)
	List(ctx context.Context, identity domain.Identity) ([]*domain.QuoteView, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
