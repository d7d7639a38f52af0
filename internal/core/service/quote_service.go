package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

type QuoteService struct {
	quotes      ports.QuoteRepository
	products    ports.ProductRepository
	idempotency ports.IdempotencyStore // optional
	logger      zerolog.Logger
}

// NewQuoteService wires the quote use cases. idempotency may be nil, in which
// case Idempotency-Key headers are ignored.
func NewQuoteService(
	quotes ports.QuoteRepository,
	products ports.ProductRepository,
	idempotency ports.IdempotencyStore,
	logger zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		quotes:      quotes,
		products:    products,
		idempotency: idempotency,
		logger:      logger,
	}
}

// Submit stores a pending quote request on behalf of the authenticated caller.
// If an idempotency key is provided and already seen for this caller, the
// earlier request ID is returned without side effects.
func (s *QuoteService) Submit(ctx context.Context, identity domain.Identity, input ports.SubmitQuoteInput) (*ports.SubmitQuoteResult, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" || input.Quantity == 0 {
		return nil, domain.NewValidationError("product_id and quantity are required")
	}
	if input.Quantity < 0 {
		return nil, domain.NewValidationError("quantity must be greater than 0")
	}
	if input.Quantity > domain.MaxQuantity {
		return nil, domain.NewValidationError(fmt.Sprintf("quantity must not exceed %d", domain.MaxQuantity))
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	reserved := false
	if key != "" && s.idempotency != nil {
		ok, existing, err := s.idempotency.Reserve(ctx, identity.UserID, key)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("client_id", identity.UserID).Msg("idempotency reserve failed, submitting anyway")
		case ok:
			reserved = true
		case existing != "":
			s.logger.Info().Str("idempotency_key", key).Str("quote_id", existing).Msg("idempotent replay")
			return &ports.SubmitQuoteResult{ID: existing, AlreadyExisted: true}, nil
		default:
			return nil, domain.ErrRequestInProgress
		}
	}

	created, err := s.create(ctx, identity, productID, input)
	if err != nil {
		if reserved {
			if rerr := s.idempotency.Release(ctx, identity.UserID, key); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if reserved {
		if err := s.idempotency.Complete(ctx, identity.UserID, key, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("quote_id", created.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().
		Str("quote_id", created.ID).
		Str("client_id", identity.UserID).
		Str("product_id", productID).
		Int("quantity", input.Quantity).
		Msg("quote submitted")

	return &ports.SubmitQuoteResult{ID: created.ID}, nil
}

func (s *QuoteService) create(ctx context.Context, identity domain.Identity, productID string, input ports.SubmitQuoteInput) (*domain.QuoteRequest, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.NewValidationError("product_id does not reference an existing product")
		}
		return nil, err
	}

	created, err := s.quotes.Create(ctx, &domain.QuoteRequest{
		ClientID:  identity.UserID,
		ProductID: productID,
		Quantity:  input.Quantity,
		Message:   strings.TrimSpace(input.Message),
		Status:    domain.QuotePending,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create quote request")
		return nil, err
	}
	return created, nil
}

// List returns every request to admins and only their own to clients.
func (s *QuoteService) List(ctx context.Context, identity domain.Identity) ([]*domain.QuoteView, error) {
	switch identity.Role {
	case domain.RoleAdmin:
		return s.quotes.List(ctx, "")
	case domain.RoleClient:
		if identity.UserID == "" {
			return nil, domain.ErrForbidden
		}
		return s.quotes.List(ctx, identity.UserID)
	default:
		return nil, domain.ErrForbidden
	}
}

// UpdateStatus overwrites the status of a request. Any valid status may replace
// any other, including itself.
func (s *QuoteService) UpdateStatus(ctx context.Context, id string, status string) error {
	next := domain.QuoteStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return domain.NewValidationError("invalid status")
	}
	if id == "" {
		return domain.ErrQuoteNotFound
	}

	if err := s.quotes.UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	s.logger.Info().Str("quote_id", id).Str("status", string(next)).Msg("quote status updated")
	return nil
}
