package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "planner:ratelimit"
	window    = time.Minute
)

// Redis counts requests per key in fixed one-minute windows.
type Redis struct {
	client redis.Cmdable
	limit  int64
	now    func() time.Time
}

// NewRedis allows requestsPerMinute requests per key and window.
func NewRedis(client redis.Cmdable, requestsPerMinute int) *Redis {
	return &Redis{client: client, limit: int64(requestsPerMinute), now: time.Now}
}

func windowKey(key string, start time.Time) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, key, start.Unix())
}

// Allow implements Limiter.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	start := now.Truncate(window)
	k := windowKey(key, start)

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit increment failed: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, window).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	if n > r.limit {
		return Decision{Allowed: false, RetryAfter: start.Add(window).Sub(now)}, nil
	}
	return Decision{Allowed: true}, nil
}
