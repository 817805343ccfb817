package mocks

import (
	"context"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// MockUserLookup resolves users by ID from an in-memory map
type MockUserLookup struct {
	FindByIDFn func(ctx context.Context, id string) (*domain.User, error)

	Users map[string]*domain.User
	Err   error

	// Calls counts FindByID invocations
	Calls int
}

// NewMockUserLookup creates a lookup holding the given users
func NewMockUserLookup(users ...*domain.User) *MockUserLookup {
	m := &MockUserLookup{Users: make(map[string]*domain.User, len(users))}
	for _, u := range users {
		m.Users[u.ID] = u
	}
	return m
}

// FindByID returns the stored user or store.ErrNotFound
func (m *MockUserLookup) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.Calls++
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}
