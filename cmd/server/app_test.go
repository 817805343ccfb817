package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/planner-api/internal/config"
	"github.com/phrazzld/planner-api/internal/platform/memstore"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8000, LogLevel: "info", ShutdownTimeoutSeconds: 1},
		Store:  config.StoreConfig{Driver: config.DriverMemory, TimeoutSeconds: 1},
		Auth: config.AuthConfig{
			SecretKey:                "a-very-long-test-secret-of-32-chars!",
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 60,
			BcryptCost:               4,
		},
		RateLimit: config.RateLimitConfig{Enabled: false, RequestsPerMinute: 30, Burst: 10},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, testLogger(), memstore.New())
	require.NoError(t, err)
	return app
}

func postJSON(t *testing.T, h http.Handler, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:5555"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouterEndToEnd(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	creds := map[string]string{"username": "ada", "email": "ada@example.com", "password": "pw"}
	w = postJSON(t, router, "/api/v1/auth/register", creds, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postJSON(t, router, "/api/v1/auth/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterRateLimitsAuth(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	router := newTestApp(t, cfg).setupRouter()

	body := map[string]string{"email": "ghost@example.com", "password": "pw"}
	first := postJSON(t, router, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := postJSON(t, router, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// Resource routes are not throttled.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig())
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listener, app.setupRouter()) }()

	url := "http://" + listener.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		res, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		backend, err := openStore(context.Background(), config.StoreConfig{Driver: config.DriverMemory, TimeoutSeconds: 1}, testLogger())
		require.NoError(t, err)
		assert.NoError(t, backend.Ping(context.Background()))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := openStore(context.Background(), config.StoreConfig{Driver: "sqlite", TimeoutSeconds: 1}, testLogger())
		assert.ErrorContains(t, err, "unsupported store driver")
	})
}

func TestRunMigrationsRequiresPostgres(t *testing.T) {
	err := runMigrations(context.Background(), config.StoreConfig{Driver: config.DriverMongo, TimeoutSeconds: 1}, "up", testLogger())
	assert.ErrorContains(t, err, "postgres driver only")
}
