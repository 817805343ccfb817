package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP statuses.
var (
	// ErrNotFound indicates the addressed document does not exist.
	ErrNotFound = store.ErrNotFound

	// ErrConflict indicates a unique field is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidListParams indicates limit or skip are out of range.
	ErrInvalidListParams = fmt.Errorf("%w: invalid pagination parameters", domain.ErrValidation)
)

// Error pairs a sentinel with a message that is safe to show to clients.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the sentinel so errors.Is works.
func (e *Error) Unwrap() error { return e.Err }

func notFound(entity string) error {
	return &Error{Err: ErrNotFound, Message: entity + " not found"}
}

func conflict(message string) error {
	return &Error{Err: ErrConflict, Message: message}
}
