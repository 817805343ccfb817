package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/platform/logger"
	"github.com/phrazzld/planner-api/internal/redact"
	"github.com/phrazzld/planner-api/internal/service"
	"github.com/phrazzld/planner-api/internal/store"
)

// decodeAndValidate reads the JSON body into v and validates it. On
// failure it writes the 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, log *slog.Logger) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		log.Debug("invalid request body", redact.ErrorAttr(err))
		respondInvalidBody(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, shared.KindBadRequest,
			shared.ValidationMessage(err), err)
		return false
	}
	return true
}

// parseListParams reads limit, skip and search from the query string.
// limit defaults to 10 and must lie in [1, 100]; skip defaults to 0.
func parseListParams(r *http.Request) (service.ListParams, error) {
	q := r.URL.Query()
	params := service.ListParams{
		Limit:  store.DefaultLimit,
		Search: q.Get("search"),
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 || limit > store.MaxLimit {
			return service.ListParams{}, domain.NewValidationError("limit", "must be an integer between 1 and 100")
		}
		params.Limit = limit
	}

	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || skip < 0 {
			return service.ListParams{}, domain.NewValidationError("skip", "must be a non-negative integer")
		}
		params.Skip = skip
	}

	return params, nil
}

// parseBoolQuery reads an optional boolean query parameter.
func parseBoolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError(name, "must be a boolean")
	}
	return v, nil
}

// requestLogger returns the request-scoped logger, falling back to base.
func requestLogger(r *http.Request, base *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), base)
}

// pathID returns the named chi URL parameter.
func pathID(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
