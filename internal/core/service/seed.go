package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

// SampleCatalog is the catalog a fresh installation starts with.
var SampleCatalog = []domain.Product{
	{Name: "Business Loan", Description: "Flexible business financing solutions", Price: decimal.NewFromInt(50000), Category: "Loans"},
	{Name: "Investment Portfolio", Description: "Diversified investment options", Price: decimal.NewFromInt(10000), Category: "Investments"},
	{Name: "Insurance Package", Description: "Comprehensive business insurance", Price: decimal.NewFromInt(5000), Category: "Insurance"},
	{Name: "Credit Line", Description: "Revolving credit facility", Price: decimal.NewFromInt(25000), Category: "Credit"},
}

// Seeder bootstraps an empty installation: the administrator account and the
// sample catalog. Both steps are no-ops when their data already exists.
type Seeder struct {
	auth     *AuthService
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewSeeder(auth *AuthService, products ports.ProductRepository, log zerolog.Logger) *Seeder {
	return &Seeder{auth: auth, products: products, log: log}
}

// EnsureAdmin creates the administrator account unless the email is taken.
// An empty password skips the step.
func (s *Seeder) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.log.Debug().Msg("admin seed skipped: no credentials configured")
		return nil
	}
	if name == "" {
		name = "Admin User"
	}

	if _, err := s.auth.repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	user, err := s.auth.createUser(ctx, email, password, name, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin account created")
	return nil
}

// SeedCatalog inserts products only when the catalog is empty.
func (s *Seeder) SeedCatalog(ctx context.Context, products []domain.Product) error {
	n, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Stagger created_at backwards from now so the listing order matches the
	// seed order reversed and no seeded row is dated in the future.
	base := time.Now().UTC()
	last := len(products) - 1
	for i := range products {
		p := products[i]
		p.CreatedAt = base.Add(-time.Duration(last-i) * time.Millisecond)
		p.UpdatedAt = p.CreatedAt
		if _, err := s.products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	s.log.Info().Int("count", len(products)).Msg("sample catalog seeded")
	return nil
}
