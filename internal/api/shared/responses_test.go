package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/planner-api/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, r, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		kind          Kind
		wantChallenge string
	}{
		{name: "not found", status: http.StatusNotFound, kind: KindNotFound},
		{name: "unauthorized gets a challenge", status: http.StatusUnauthorized, kind: KindUnauthorized, wantChallenge: BearerChallenge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/x", nil)
			r = r.WithContext(SetTraceID(r.Context()))
			w := httptest.NewRecorder()

			RespondWithError(w, r, tt.status, tt.kind, "detail")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantChallenge, w.Header().Get("WWW-Authenticate"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, "detail", body.Error)
			assert.Equal(t, GetTraceID(r.Context()), body.TraceID)
		})
	}
}

func TestRespondWithErrorKeepsExistingChallenge(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	SetChallenge(w, true)
	RespondWithError(w, r, http.StatusUnauthorized, KindUnauthorized, "Invalid token")

	assert.Equal(t, InvalidTokenChallenge, w.Header().Get("WWW-Authenticate"))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error logs at error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "rate limit logs at warn", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{name: "client error logs at debug", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{
			name:      "elevated client error logs at warn",
			status:    http.StatusUnauthorized,
			opts:      []ResponseOption{WithElevatedLogLevel()},
			wantLevel: "WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, log := logger.SetupTestLogger(t)
			ctx := logger.WithLogger(context.Background(), log)
			r := httptest.NewRequest(http.MethodGet, "/plans", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			cause := errors.New("dial mongodb://root:hunter22@db:27017 failed")
			RespondWithErrorAndLog(w, r, tt.status, KindInternal, GenericErrorMessage, cause, tt.opts...)

			assert.NotContains(t, w.Body.String(), "hunter22")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.NotContains(t, entries[0]["error"], "hunter22")
		})
	}
}
