package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finquote/quoting-portal/internal/api/middleware"
	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, name string) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.meFn(ctx, identity)
}

type stubProductService struct {
	listFn   func(ctx context.Context) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubQuoteService struct {
	submitFn       func(ctx context.Context, identity domain.Identity, input ports.SubmitQuoteInput) (*ports.SubmitQuoteResult, error)
	listFn         func(ctx context.Context, identity domain.Identity) ([]*domain.QuoteView, error)
	updateStatusFn func(ctx context.Context, id, status string) error
}

func (s *stubQuoteService) Submit(ctx context.Context, identity domain.Identity, input ports.SubmitQuoteInput) (*ports.SubmitQuoteResult, error) {
	return s.submitFn(ctx, identity, input)
}

func (s *stubQuoteService) List(ctx context.Context, identity domain.Identity) ([]*domain.QuoteView, error) {
	return s.listFn(ctx, identity)
}

func (s *stubQuoteService) UpdateStatus(ctx context.Context, id, status string) error {
	return s.updateStatusFn(ctx, id, status)
}

var (
	_ ports.AuthService    = (*stubAuthService)(nil)
	_ ports.ProductService = (*stubProductService)(nil)
	_ ports.QuoteService   = (*stubQuoteService)(nil)
)

// newContext builds an echo context with the validator installed. body may be empty.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, identity domain.Identity) echo.Context {
	c.Set(middleware.IdentityKey, identity)
	return c
}
