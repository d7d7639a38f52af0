package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finquote/quoting-portal/internal/api/middleware"
	"github.com/finquote/quoting-portal/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and fails
// fast before any service call. A missing or incomplete identity means the
// route was registered without Auth or the token lacked a subject.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.UserID == "" || identity.Role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}
	return identity, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
