package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

type QuoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *q
	created.ID = uuid.NewString()

	_, err := r.db.Exec(ctx, `
		INSERT INTO quote_requests (id, client_id, product_id, quantity, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		created.ID, created.ClientID, created.ProductID, created.Quantity, created.Message, string(created.Status), created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert quote request: %w", err)
	}
	return &created, nil
}

// List joins requests with their client and product. The client filter is a
// bound parameter; an empty clientID matches every row.
func (r *QuoteRepository) List(ctx context.Context, clientID string) ([]*domain.QuoteView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT q.id, q.client_id, q.product_id, q.quantity, q.message, q.status, q.created_at,
		       u.name, u.email, p.name, p.price
		FROM quote_requests q
		JOIN users u ON u.id = q.client_id
		JOIN products p ON p.id = q.product_id
		WHERE ($1 = '' OR q.client_id = $1)
		ORDER BY q.created_at DESC, q.id DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list quote requests: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.QuoteView, 0)
	for rows.Next() {
		var (
			v      domain.QuoteView
			status string
		)
		if err := rows.Scan(
			&v.ID, &v.ClientID, &v.ProductID, &v.Quantity, &v.Message, &status, &v.CreatedAt,
			&v.ClientName, &v.ClientEmail, &v.ProductName, &v.ProductPrice,
		); err != nil {
			return nil, fmt.Errorf("scan quote request: %w", err)
		}
		v.Status = domain.QuoteStatus(status)
		v.CreatedAt = v.CreatedAt.UTC()
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE quote_requests SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}
