package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	users     map[string]*domain.User // by email
	findErr   error
	createErr error
	seq       int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	seq       int
	createErr error
	lastPatch *domain.ProductPatch
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("prod-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	r.lastPatch = &patch
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	patch.Apply(p)
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// ---------------------------------------------------------------------------
// Quotes
// ---------------------------------------------------------------------------

type stubQuoteRepo struct {
	byID           map[string]*domain.QuoteRequest
	seq            int
	createErr      error
	lastListFilter *string
}

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{byID: make(map[string]*domain.QuoteRequest)}
}

func (r *stubQuoteRepo) Create(_ context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *q
	clone.ID = fmt.Sprintf("quote-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubQuoteRepo) List(_ context.Context, clientID string) ([]*domain.QuoteView, error) {
	r.lastListFilter = &clientID
	var out []*domain.QuoteView
	for _, q := range r.byID {
		if clientID != "" && q.ClientID != clientID {
			continue
		}
		out = append(out, &domain.QuoteView{QuoteRequest: *q})
	}
	return out, nil
}

func (r *stubQuoteRepo) UpdateStatus(_ context.Context, id string, status domain.QuoteStatus) error {
	q, ok := r.byID[id]
	if !ok {
		return domain.ErrQuoteNotFound
	}
	q.Status = status
	return nil
}

// ---------------------------------------------------------------------------
// Idempotency
// ---------------------------------------------------------------------------

type stubIdempotency struct {
	mu          sync.Mutex
	keys        map[string]string
	reserveErr  error
	completeErr error
	released    []string
}

const stubPending = "pending"

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, clientID, key string) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return false, "", s.reserveErr
	}
	k := clientID + ":" + key
	id, held := s.keys[k]
	if !held {
		s.keys[k] = stubPending
		return true, "", nil
	}
	if id == stubPending {
		return false, "", nil
	}
	return false, id, nil
}

func (s *stubIdempotency) Complete(_ context.Context, clientID, key, quoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil {
		return s.completeErr
	}
	s.keys[clientID+":"+key] = quoteID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, clientID+":"+key)
	s.released = append(s.released, clientID+":"+key)
	return nil
}

var (
	_ ports.AuthRepository    = (*stubAuthRepo)(nil)
	_ ports.ProductRepository = (*stubProductRepo)(nil)
	_ ports.QuoteRepository   = (*stubQuoteRepo)(nil)
	_ ports.IdempotencyStore  = (*stubIdempotency)(nil)
)

var errDBDown = errors.New("db unavailable")
