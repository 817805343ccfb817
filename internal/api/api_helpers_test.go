package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/planner-api/internal/api/middleware"
	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/config"
	"github.com/phrazzld/planner-api/internal/platform/memstore"
	"github.com/phrazzld/planner-api/internal/service"
	"github.com/phrazzld/planner-api/internal/service/auth"
)

const missingID = "65f1c0ffee0000000000abcd"

type testAPI struct {
	router   http.Handler
	services *service.Services
	tokens   auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := service.New(memstore.New().Collections(), auth.NewBcryptHasher(bcrypt.MinCost), log)
	tokens, err := auth.NewTokenService(config.AuthConfig{
		SecretKey:                "test-secret-key-that-is-long-enough-123",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
		BcryptCost:               bcrypt.MinCost,
	})
	require.NoError(t, err)

	handlers := &Handlers{
		Auth:      NewAuthHandler(services.Users, tokens, log),
		Users:     NewUserHandler(services.Users, log),
		Plans:     NewPlanHandler(services.Plans, log),
		TaskLists: NewTaskListHandler(services.TaskLists, log),
		Tasks:     NewTaskHandler(services.Tasks, log),
	}
	authMW := middleware.NewAuthMiddleware(tokens, services.Users, log)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Mount("/api/v1", handlers.Routes(authMW.Authenticate, nil))

	return &testAPI{router: r, services: services, tokens: tokens}
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decode[shared.ErrorResponse](t, w)
}

func (a *testAPI) register(t *testing.T, username, email, password string) UserResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[UserResponse](t, w)
}

func (a *testAPI) login(t *testing.T, email, password string) LoginResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[LoginResponse](t, w)
}
