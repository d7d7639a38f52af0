package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finquote/quoting-portal/internal/api/handler"
	"github.com/finquote/quoting-portal/internal/core/ports"
	"github.com/finquote/quoting-portal/internal/infrastructure/config"
	"github.com/finquote/quoting-portal/internal/infrastructure/db/memory"
	mongodb "github.com/finquote/quoting-portal/internal/infrastructure/db/mongo"
	"github.com/finquote/quoting-portal/internal/infrastructure/db/postgres"
)

// store bundles the repositories of the selected driver with its readiness
// checks and a close function.
type store struct {
	users    ports.AuthRepository
	products ports.ProductRepository
	quotes   ports.QuoteRepository
	checks   map[string]handler.DependencyCheck
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store ready")
		return &store{
			users:    mongodb.NewUserRepository(db),
			products: mongodb.NewProductRepository(db),
			quotes:   mongodb.NewQuoteRepository(db),
			checks:   map[string]handler.DependencyCheck{"mongodb": mongodb.Ping(client)},
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Warn().Err(err).Msg("mongo disconnect")
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return &store{
			users:    postgres.NewUserRepository(pool),
			products: postgres.NewProductRepository(pool),
			quotes:   postgres.NewQuoteRepository(pool),
			checks:   map[string]handler.DependencyCheck{"postgres": postgres.Ping(pool)},
			close:    pool.Close,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		mem := memory.NewStore()
		return &store{
			users:    mem.Users(),
			products: mem.Products(),
			quotes:   mem.Quotes(),
			checks:   map[string]handler.DependencyCheck{},
			close:    func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
