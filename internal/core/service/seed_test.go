package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/pkg/token"
)

func newSeeder(t *testing.T) (*Seeder, *stubAuthRepo, *stubProductRepo) {
	t.Helper()
	users := newStubAuthRepo()
	products := newStubProductRepo()
	tokens, err := token.NewManager("secret")
	require.NoError(t, err)
	auth := NewAuthService(users, tokens, bcrypt.MinCost, discardLogger)
	return NewSeeder(auth, products, discardLogger), users, products
}

func TestSeeder_EnsureAdmin(t *testing.T) {
	seeder, users, _ := newSeeder(t)

	require.NoError(t, seeder.EnsureAdmin(context.Background(), "Admin@Finance.com", "admin123", ""))
	u, ok := users.users["admin@finance.com"]
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "Admin User", u.Name)

	// Second run is a no-op.
	require.NoError(t, seeder.EnsureAdmin(context.Background(), "admin@finance.com", "other", "Other"))
	assert.Len(t, users.users, 1)
	assert.Equal(t, "Admin User", users.users["admin@finance.com"].Name)
}

func TestSeeder_EnsureAdmin_SkippedWithoutPassword(t *testing.T) {
	seeder, users, _ := newSeeder(t)

	require.NoError(t, seeder.EnsureAdmin(context.Background(), "admin@finance.com", "", ""))
	assert.Empty(t, users.users)
}

func TestSeeder_EnsureAdmin_RepoError(t *testing.T) {
	seeder, users, _ := newSeeder(t)
	users.findErr = errDBDown

	err := seeder.EnsureAdmin(context.Background(), "admin@finance.com", "pw", "")
	assert.ErrorIs(t, err, errDBDown)
}

func TestSeeder_SeedCatalog(t *testing.T) {
	seeder, _, products := newSeeder(t)

	require.NoError(t, seeder.SeedCatalog(context.Background(), SampleCatalog))
	require.Len(t, products.byID, len(SampleCatalog))

	now := time.Now().UTC()
	for _, p := range products.byID {
		assert.False(t, p.CreatedAt.After(now), "%s is dated in the future", p.Name)
	}

	listed, err := products.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Credit Line", listed[0].Name, "newest first")
	assert.Equal(t, "Business Loan", listed[len(listed)-1].Name)

	// Non-empty catalog is left alone.
	require.NoError(t, seeder.SeedCatalog(context.Background(), SampleCatalog))
	assert.Len(t, products.byID, len(SampleCatalog))
}
