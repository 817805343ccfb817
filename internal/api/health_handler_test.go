package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		ping       pingerFunc
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "store up",
			ping:       func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ok", Store: "up"},
		},
		{
			name:       "store down",
			ping:       func(context.Context) error { return errors.New("dial tcp: refused") },
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "unavailable", Store: "down"},
		},
		{
			name: "ping exceeds timeout",
			ping: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "unavailable", Store: "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.ping, 20*time.Millisecond, log)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, decode[HealthResponse](t, w))
		})
	}
}
