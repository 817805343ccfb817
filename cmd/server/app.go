package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planner-api/internal/config"
	"github.com/phrazzld/planner-api/internal/platform/ratelimit"
	"github.com/phrazzld/planner-api/internal/redact"
	"github.com/phrazzld/planner-api/internal/service"
	"github.com/phrazzld/planner-api/internal/service/auth"
	"github.com/phrazzld/planner-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	store  store.Backend

	tokens   auth.TokenService
	services *service.Services

	// limiter is nil when rate limiting is disabled.
	limiter      ratelimit.Limiter
	closeLimiter func() error
}

// newApplication wires services, token issuance and the optional rate
// limiter on top of an opened store.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, backend store.Backend) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		store:  backend,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		slog.String("algorithm", cfg.Auth.Algorithm),
		slog.Int("access_token_expire_minutes", cfg.Auth.AccessTokenExpireMinutes))

	app.services = service.New(backend.Collections(), auth.NewBcryptHasher(cfg.Auth.BcryptCost), logger)

	if cfg.RateLimit.Enabled {
		app.limiter, app.closeLimiter, err = ratelimit.New(ctx, cfg.RateLimit, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the limiter and store connections.
func (app *application) cleanup() {
	if app.closeLimiter != nil {
		if err := app.closeLimiter(); err != nil {
			app.logger.Error("error closing rate limiter", redact.ErrorAttr(err))
		}
	}
	if app.store != nil {
		if err := app.store.Close(context.Background()); err != nil {
			app.logger.Error("error closing store", redact.ErrorAttr(err))
		}
	}
}
