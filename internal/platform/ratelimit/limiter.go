package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/planner-api/internal/config"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the client should wait when not allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// New builds the limiter selected by cfg. A Redis URL selects the shared
// Redis limiter; otherwise requests are counted in process. The returned
// close function releases any connection and is never nil.
func New(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) (Limiter, func() error, error) {
	if cfg.RedisURL == "" {
		logger.Info("using in-memory rate limiter",
			"requests_per_minute", cfg.RequestsPerMinute,
			"burst", cfg.Burst)
		return NewMemory(cfg.RequestsPerMinute, cfg.Burst), func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid rate limit redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Error("redis connection failed", "address", opts.Addr, "error", err)
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("using redis rate limiter", "address", opts.Addr,
		"requests_per_minute", cfg.RequestsPerMinute)
	return NewRedis(client, cfg.RequestsPerMinute), client.Close, nil
}
