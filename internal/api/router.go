package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/finquote/quoting-portal/docs"
	"github.com/finquote/quoting-portal/internal/api/handler"
	"github.com/finquote/quoting-portal/internal/api/middleware"
	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
	"github.com/finquote/quoting-portal/pkg/token"
)

// Dependencies are the collaborators the HTTP layer needs. They are built in
// main so that the router never reaches for globals.
type Dependencies struct {
	Logger   zerolog.Logger
	Tokens   *token.Manager
	Auth     ports.AuthService
	Products ports.ProductService
	Quotes   ports.QuoteService

	// ReadinessChecks are pinged by GET /health/ready, keyed by dependency name.
	ReadinessChecks map[string]handler.DependencyCheck
	// Swagger mounts the OpenAPI UI under /swagger/*.
	Swagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// HTTP request metrics live in a per-router registry so that building
	// several routers in one process (tests) never collides on registration.
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "quoting_portal",
		Subsystem:  "http",
		Registerer: registry,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.ReadinessChecks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))
	if deps.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	productHandler := handler.NewProductHandler(deps.Products)
	quoteHandler := handler.NewQuoteHandler(deps.Quotes)

	requireSession := middleware.Auth(deps.Tokens)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, requireSession)

	// --- Catalog ---
	products := api.Group("/products", requireSession)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, requireAdmin)
	products.PUT("/:id", productHandler.Update, requireAdmin)
	products.DELETE("/:id", productHandler.Delete, requireAdmin)

	// --- Quote requests ---
	quotes := api.Group("/quote-requests", requireSession)
	quotes.POST("", quoteHandler.Submit)
	quotes.GET("", quoteHandler.List)
	quotes.PUT("/:id/status", quoteHandler.UpdateStatus, requireAdmin)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
