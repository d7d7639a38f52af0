// Command api serves the quoting portal HTTP API.
//
// @title                       Quoting Portal API
// @version                     1.0
// @description                 Business-finance product catalog and quote request workflow.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/finquote/quoting-portal/internal/api"
	"github.com/finquote/quoting-portal/internal/core/ports"
	"github.com/finquote/quoting-portal/internal/core/service"
	"github.com/finquote/quoting-portal/internal/infrastructure/config"
	redisdb "github.com/finquote/quoting-portal/internal/infrastructure/db/redis"
	"github.com/finquote/quoting-portal/pkg/logger"
	"github.com/finquote/quoting-portal/pkg/token"
)

const serviceName = "quoting-portal"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	tokens, err := token.NewManager(cfg.JWTSecret, token.WithTTL(cfg.JWTTTL), token.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	var idempotency ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, idempotency keys disabled")
		} else {
			defer rdb.Close()
			idempotency = redisdb.NewIdempotencyStore(rdb)
			st.checks["redis"] = redisdb.Ping(rdb)
		}
	}

	authService := service.NewAuthService(st.users, tokens, cfg.BcryptCost, log)
	productService := service.NewProductService(st.products, log)
	quoteService := service.NewQuoteService(st.quotes, st.products, idempotency, log)

	if err := bootstrap(ctx, cfg, service.NewSeeder(authService, st.products, log)); err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Logger:          log,
		Tokens:          tokens,
		Auth:            authService,
		Products:        productService,
		Quotes:          quoteService,
		ReadinessChecks: st.checks,
		Swagger:         !cfg.IsProduction(),
	})

	return serve(ctx, e, cfg, log)
}

func bootstrap(ctx context.Context, cfg *config.Config, seeder *service.Seeder) error {
	if err := seeder.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName); err != nil {
		return err
	}
	if cfg.Seed.SampleProducts {
		if err := seeder.SeedCatalog(ctx, service.SampleCatalog); err != nil {
			return err
		}
	}
	return nil
}

type httpServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

// serve runs the server until ctx is cancelled, then drains in-flight requests
// within the configured shutdown budget.
func serve(ctx context.Context, srv httpServer, cfg *config.Config, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
