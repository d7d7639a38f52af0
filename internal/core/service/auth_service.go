package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
	"github.com/finquote/quoting-portal/pkg/token"
)

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.AuthRepository
	tokens     *token.Manager
	bcryptCost int
	log        zerolog.Logger

	// dummyHash is compared against on unknown emails so a login costs one
	// bcrypt comparison whether or not the account exists.
	dummyHash []byte
	compare   func(hash, password []byte) error
}

func NewAuthService(repo ports.AuthRepository, tokens *token.Manager, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		log.Warn().Err(err).Msg("dummy password hash unavailable")
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
		dummyHash:  dummy,
		compare:    bcrypt.CompareHashAndPassword,
	}
}

// Register creates a client account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return "", nil, domain.NewValidationError("email, password and name are required")
	}

	user, err := s.createUser(ctx, email, password, name, domain.RoleClient)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return tkn, user, nil
}

// Login verifies the credentials and returns a fresh session token. An unknown
// email and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.compare(s.dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if s.compare([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}
	return tkn, user, nil
}

// Me returns the stored account behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, identity.UserID)
}

func (s *AuthService) createUser(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
}

func (s *AuthService) issue(user *domain.User) (string, error) {
	return s.tokens.Issue(token.Subject{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
