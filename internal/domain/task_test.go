package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityValid(t *testing.T) {
	tests := []struct {
		in   Priority
		want bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{"", false},
		{"low", false},
		{"URGENT", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Valid(), "priority %q", tt.in)
	}
}

func TestStatusValid(t *testing.T) {
	tests := []struct {
		in   Status
		want bool
	}{
		{StatusToDo, true},
		{StatusInProgress, true},
		{StatusReview, true},
		{StatusDone, true},
		{"", false},
		{"done", false},
		{"BLOCKED", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Valid(), "status %q", tt.in)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "must be a valid email address")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "invalid email: must be a valid email address", err.Error())
	assert.Equal(t, "plain", NewValidationError("", "plain").Error())
}

func TestInvalidIDError(t *testing.T) {
	err := InvalidIDError("task_list_id")

	assert.ErrorIs(t, err, ErrInvalidID)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "invalid ID: task_list_id", err.Error())

	var idErr *IDError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &idErr)
	assert.Equal(t, "task_list_id", idErr.Field)
}

func TestBaseStamp(t *testing.T) {
	var b Base
	now := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.FixedZone("X", 3600))

	b.Stamp(now)
	b.SetID("abc")

	assert.Equal(t, "abc", b.GetID())
	assert.Equal(t, time.UTC, b.CreatedAt.Location())
	assert.Equal(t, 123000000, b.CreatedAt.Nanosecond())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
}
