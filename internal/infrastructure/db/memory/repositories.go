package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.emails[user.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	created := *user
	created.ID = uuid.NewString()
	r.s.users[created.ID] = created
	r.s.emails[created.Email] = created.ID
	return &created, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type ProductRepository struct{ s *Store }

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *p
	created.ID = uuid.NewString()
	r.s.products[created.ID] = created
	return &created, nil
}

func (r *ProductRepository) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	patch.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return &p, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.products)), nil
}

type QuoteRepository struct{ s *Store }

func (r *QuoteRepository) Create(_ context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *q
	created.ID = uuid.NewString()
	r.s.quotes[created.ID] = created
	return &created, nil
}

// List drops requests whose client or product is gone, like an inner join would.
func (r *QuoteRepository) List(_ context.Context, clientID string) ([]*domain.QuoteView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.QuoteView, 0)
	for _, q := range r.s.quotes {
		if clientID != "" && q.ClientID != clientID {
			continue
		}
		u, ok := r.s.users[q.ClientID]
		if !ok {
			continue
		}
		p, ok := r.s.products[q.ProductID]
		if !ok {
			continue
		}
		out = append(out, &domain.QuoteView{
			QuoteRequest: q,
			ClientName:   u.Name,
			ClientEmail:  u.Email,
			ProductName:  p.Name,
			ProductPrice: p.Price,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *QuoteRepository) UpdateStatus(_ context.Context, id string, status domain.QuoteStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.quotes[id]
	if !ok {
		return domain.ErrQuoteNotFound
	}
	q.Status = status
	r.s.quotes[id] = q
	return nil
}
