package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/platform/logger"
	"github.com/phrazzld/planner-api/internal/platform/ratelimit"
	"github.com/phrazzld/planner-api/internal/redact"
)

// RateLimit throttles requests per client IP. Run chi's RealIP before it
// when the server sits behind a proxy. Limiter failures let the request
// through.
func RateLimit(limiter ratelimit.Limiter, base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.FromContextOrDefault(r.Context(), base).
					Error("rate limiter unavailable", redact.ErrorAttr(err))
				next.ServeHTTP(w, r)
				return
			}
			if !decision.Allowed {
				seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				shared.RespondWithError(w, r, http.StatusTooManyRequests, shared.KindTooManyRequests,
					"Rate limit exceeded. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
