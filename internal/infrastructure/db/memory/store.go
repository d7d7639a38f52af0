// Package memory is a process-local store used for development and tests.
// All three repositories share one lock so joined reads see a consistent view.
package memory

import (
	"sync"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	emails   map[string]string // email -> user id
	products map[string]domain.Product
	quotes   map[string]domain.QuoteRequest
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		emails:   make(map[string]string),
		products: make(map[string]domain.Product),
		quotes:   make(map[string]domain.QuoteRequest),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) Quotes() *QuoteRepository     { return &QuoteRepository{s: s} }
