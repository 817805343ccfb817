package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner-api/internal/platform/logger"
	"github.com/phrazzld/planner-api/internal/redact"
)

// Kind is the machine-stable category of an error response.
type Kind string

const (
	KindBadRequest      Kind = "bad_request"
	KindUnauthorized    Kind = "unauthorized"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindTooManyRequests Kind = "too_many_requests"
	KindInternal        Kind = "internal"
)

// GenericErrorMessage is the only detail shown for internal errors.
const GenericErrorMessage = "An unexpected error occurred"

// Challenge values for the WWW-Authenticate header.
const (
	BearerChallenge       = `Bearer realm="api"`
	InvalidTokenChallenge = `Bearer realm="api", error="invalid_token"`
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Kind    Kind   `json:"kind"`
	Error   string `json:"error"`
	Code    int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID string `json:"trace_id,omitempty"`
}

// MessageResponse is the body of successful deletions.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel raises a 4xx response to WARN instead of DEBUG.
// Use for operational signals such as repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// SetChallenge sets the WWW-Authenticate header. invalidToken marks a
// presented token as rejected, as opposed to a missing credential.
func SetChallenge(w http.ResponseWriter, invalidToken bool) {
	if invalidToken {
		w.Header().Set("WWW-Authenticate", InvalidTokenChallenge)
		return
	}
	w.Header().Set("WWW-Authenticate", BearerChallenge)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", redact.ErrorAttr(err))
	}
}

// RespondWithError writes a JSON error response. A 401 without a challenge
// header gets the plain Bearer challenge.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, kind Kind, message string) {
	RespondWithErrorAndLog(w, r, status, kind, message, nil)
}

// RespondWithErrorAndLog writes a JSON error response and logs the redacted
// cause. Only message reaches the client.
//
// 5xx responses log at ERROR and 429 at WARN. Other 4xx responses log at
// DEBUG unless WithElevatedLogLevel is given.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	kind Kind,
	message string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	if status == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
		SetChallenge(w, false)
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("kind", string(kind)),
		slog.String("user_message", message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			redact.ErrorAttr(err),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	var options responseOptions
	for _, opt := range opts {
		opt(&options)
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	case options.elevateLogLevel && status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), level, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Kind:    kind,
		Error:   message,
		Code:    status,
		TraceID: traceID,
	})
}
