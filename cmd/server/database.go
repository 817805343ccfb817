package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/planner-api/internal/config"
	"github.com/phrazzld/planner-api/internal/platform/memstore"
	"github.com/phrazzld/planner-api/internal/platform/mongodb"
	"github.com/phrazzld/planner-api/internal/platform/postgres"
	"github.com/phrazzld/planner-api/internal/store"
)

// openStore connects the backend named by cfg.Driver. The postgres schema
// is migrated up before the store is returned.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	switch cfg.Driver {
	case config.DriverMongo:
		s, err := mongodb.Connect(ctx, cfg.URI, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		return s, nil

	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.URI, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, s.DB(), "up", logger); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		return s, nil

	case config.DriverMemory:
		logger.Warn("using the in-memory store, data does not survive a restart")
		return memstore.New(), nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// runMigrations executes a goose command against the postgres store.
func runMigrations(ctx context.Context, cfg config.StoreConfig, command string, logger *slog.Logger) error {
	if cfg.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to the postgres driver only, configured driver is %q", cfg.Driver)
	}

	openCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()
	s, err := postgres.Open(openCtx, cfg.URI, logger)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close(context.Background()) }()

	if err := postgres.Migrate(ctx, s.DB(), command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	logger.Info("migration finished", slog.String("command", command))
	return nil
}
