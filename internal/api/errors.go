package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/service"
	"github.com/phrazzld/planner-api/internal/service/auth"
	"github.com/phrazzld/planner-api/internal/store"
)

// MapErrorToKind maps internal errors to an error kind and HTTP status
// without leaking internal error types to clients. Conflicts are reported
// with 400, not 409.
func MapErrorToKind(err error) (shared.Kind, int) {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return shared.KindInternal, http.StatusInternalServerError

	// Authentication errors
	case errors.Is(err, auth.ErrMalformedHeader),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserNotFound):
		return shared.KindUnauthorized, http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return shared.KindConflict, http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return shared.KindNotFound, http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.As(err, &verrs):
		return shared.KindBadRequest, http.StatusBadRequest

	default:
		return shared.KindInternal, http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Only
// messages built for clients are passed through; anything unrecognized
// yields the generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return shared.GenericErrorMessage
	}

	var (
		svcErr   *service.Error
		idErr    *domain.IDError
		fieldErr *domain.ValidationError
		verrs    validator.ValidationErrors
	)

	switch {
	case errors.As(err, &svcErr):
		return svcErr.Message

	case errors.Is(err, auth.ErrMalformedHeader):
		return "Authorization header must use the Bearer scheme"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUserNotFound):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.As(err, &idErr):
		return "Invalid " + idErr.Field
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"
	case errors.Is(err, domain.ErrInvalidPriority):
		return "Invalid priority: must be one of LOW, MEDIUM, HIGH"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid status: must be one of TO_DO, IN_PROGRESS, REVIEW, DONE"
	case errors.Is(err, service.ErrInvalidListParams):
		return "Invalid pagination: limit must be between 1 and 100 and skip must not be negative"
	case errors.As(err, &fieldErr):
		return fieldErr.Error()
	case errors.As(err, &verrs):
		return shared.ValidationMessage(err)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return shared.GenericErrorMessage
	}
}

// HandleAPIError writes the error response for err. Token failures carry
// the invalid_token challenge.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	kind, status := MapErrorToKind(err)
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrUserNotFound) {
		shared.SetChallenge(w, true)
	}
	shared.RespondWithErrorAndLog(w, r, status, kind, GetSafeErrorMessage(err), err)
}

// respondInvalidBody reports an undecodable request body.
func respondInvalidBody(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, shared.KindBadRequest,
		"Invalid request format", err)
}
