package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/planner-api/internal/api/shared"
)

func TestRegisterAndLogin(t *testing.T) {
	a := newTestAPI(t)

	user := a.register(t, "a", "a@x.com", "p")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a", user.Username)

	login := a.login(t, "a@x.com", "p")
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "bearer", login.TokenType)
	assert.NotEmpty(t, login.ExpiresAt)
	assert.Equal(t, user.ID, login.User.ID)

	claims, err := a.tokens.Verify(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	w := a.do(t, http.MethodGet, "/api/v1/users/"+claims.UserID, nil, login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	got := decode[UserResponse](t, w)
	assert.Equal(t, "a", got.Username)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestRegisterRejections(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "ada", "ada@example.com", "secret")

	tests := []struct {
		name     string
		body     interface{}
		wantKind shared.Kind
		wantMsg  string
	}{
		{
			name:     "duplicate email",
			body:     map[string]string{"username": "ada2", "email": "ADA@example.com", "password": "x"},
			wantKind: shared.KindConflict,
			wantMsg:  "Email already registered",
		},
		{
			name:     "invalid email",
			body:     map[string]string{"username": "bob", "email": "bob", "password": "x"},
			wantKind: shared.KindBadRequest,
			wantMsg:  "Invalid email: invalid email format",
		},
		{
			name:     "missing password",
			body:     map[string]string{"username": "bob", "email": "bob@example.com"},
			wantKind: shared.KindBadRequest,
			wantMsg:  "Invalid password: required field",
		},
		{
			name:     "malformed json",
			body:     `{"username":`,
			wantKind: shared.KindBadRequest,
			wantMsg:  "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/v1/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := errorBody(t, w)
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestLoginFailuresLookAlike(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "ada", "ada@example.com", "correct-horse")

	wrongPassword := a.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ada@example.com", "password": "battery"}, "")
	unknownEmail := a.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ghost@example.com", "password": "battery"}, "")

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, shared.BearerChallenge, w.Header().Get("WWW-Authenticate"))
	}
	assert.Equal(t, errorBody(t, wrongPassword).Error, errorBody(t, unknownEmail).Error)
	assert.Equal(t, "Invalid credentials", errorBody(t, unknownEmail).Error)
}

func TestProfile(t *testing.T) {
	a := newTestAPI(t)
	user := a.register(t, "ada", "ada@example.com", "pw")
	token := a.login(t, "ada@example.com", "pw").AccessToken

	w := a.do(t, http.MethodGet, "/api/v1/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, decode[UserResponse](t, w).ID)

	t.Run("without token", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/auth/profile", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, shared.BearerChallenge, w.Header().Get("WWW-Authenticate"))
		assert.Equal(t, shared.KindUnauthorized, errorBody(t, w).Kind)
	})

	t.Run("tampered token", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/auth/profile", nil, token+"x")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, shared.InvalidTokenChallenge, w.Header().Get("WWW-Authenticate"))
	})

	t.Run("user deleted after login", func(t *testing.T) {
		w := a.do(t, http.MethodDelete, "/api/v1/users/"+user.ID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = a.do(t, http.MethodGet, "/api/v1/auth/profile", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, shared.InvalidTokenChallenge, w.Header().Get("WWW-Authenticate"))
	})
}
