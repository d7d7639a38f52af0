package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = Subject{ID: "u-1", Email: "alice@example.com", Name: "Alice", Role: "client"}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestManager_IssueAndParse(t *testing.T) {
	m, err := NewManager("secret")
	require.NoError(t, err)

	signed, err := m.Issue(alice)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.ID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
}

func TestManager_ExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	m, err := NewManager("secret", WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.TTL())

	signed, err := m.Issue(alice)
	require.NoError(t, err)

	clock = issuedAt.Add(23 * time.Hour)
	_, err = m.Parse(signed)
	require.NoError(t, err, "token must still be valid before 24h")

	clock = issuedAt.Add(24*time.Hour + time.Second)
	_, err = m.Parse(signed)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestManager_CustomTTL(t *testing.T) {
	m, err := NewManager("secret", WithTTL(time.Hour), WithIssuer("test"))
	require.NoError(t, err)

	signed, err := m.Issue(alice)
	require.NoError(t, err)
	claims, err := m.Parse(signed)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Hour, lifetime)
	assert.Equal(t, "test", claims.Issuer)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	issuer, _ := NewManager("one")
	verifier, _ := NewManager("two")

	signed, err := issuer.Issue(alice)
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m, _ := NewManager("secret")
	_, err := m.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	m, _ := NewManager("secret")

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		ID:   "u-1",
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tkn.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestManager_RejectsTokenWithoutExpiry(t *testing.T) {
	m, _ := NewManager("secret")

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: "u-1", Role: "admin"})
	signed, err := tkn.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	require.ErrorIs(t, err, ErrInvalid)
}
