// Package ratelimit throttles requests per client key. The in-memory limiter
// uses a token bucket per key; the Redis limiter counts requests in fixed
// one-minute windows so several server instances share one budget.
package ratelimit
