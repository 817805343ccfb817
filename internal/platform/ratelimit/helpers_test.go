package ratelimit

import (
	"io"
	"log/slog"

	"github.com/phrazzld/planner-api/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRateLimitConfig(redisURL string) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		Burst:             1,
		RedisURL:          redisURL,
	}
}
