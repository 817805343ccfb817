// Package main implements the entry point for the planner API server,
// which serves users, plans, task lists and tasks over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/planner-api/internal/config"
	"github.com/phrazzld/planner-api/internal/platform/logger"
)

func main() {
	migrate := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version) against the postgres store and exit")
	flag.Parse()

	if err := run(*migrate); err != nil {
		log.Fatalf("planner-api: %v", err)
	}
}

// run loads configuration, sets up logging and either runs a migration
// command or serves until SIGINT or SIGTERM.
func run(migrate string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("store_driver", cfg.Store.Driver),
		slog.Bool("rate_limit_enabled", cfg.RateLimit.Enabled))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrate != "" {
		return runMigrations(ctx, cfg.Store, migrate, appLogger)
	}

	backend, err := openStore(ctx, cfg.Store, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appLogger, backend)
	if err != nil {
		_ = backend.Close(context.Background())
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
