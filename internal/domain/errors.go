package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidPriority is returned when a task priority is outside the closed set.
	ErrInvalidPriority = fmt.Errorf("%w: priority must be one of LOW, MEDIUM, HIGH", ErrValidation)

	// ErrInvalidStatus is returned when a task status is outside the closed set.
	ErrInvalidStatus = fmt.Errorf("%w: status must be one of TO_DO, IN_PROGRESS, REVIEW, DONE", ErrValidation)
)

// ValidationError describes a single field that failed validation.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is reports ErrValidation as the sentinel for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IDError reports a structurally invalid identifier in Field.
// It matches ErrInvalidID with errors.Is.
type IDError struct {
	Field string
}

func (e *IDError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidID, e.Field)
}

// Is reports ErrInvalidID as the sentinel for every IDError.
func (e *IDError) Is(target error) bool {
	return target == ErrInvalidID
}

// InvalidIDError reports a structurally invalid identifier for field.
func InvalidIDError(field string) error {
	return &IDError{Field: field}
}
