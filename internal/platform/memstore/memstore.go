package memstore

import (
	"context"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// Store holds the four planner collections in memory.
type Store struct {
	users     *Collection[domain.User, *domain.User]
	plans     *Collection[domain.Plan, *domain.Plan]
	taskLists *Collection[domain.TaskList, *domain.TaskList]
	tasks     *Collection[domain.Task, *domain.Task]
}

var _ store.Backend = (*Store)(nil)

// New creates an empty in-memory store. User emails are unique ignoring case.
func New() *Store {
	return &Store{
		users:     NewCollection[domain.User](store.Users, WithUniqueFold("email")),
		plans:     NewCollection[domain.Plan](store.Plans),
		taskLists: NewCollection[domain.TaskList](store.TaskLists),
		tasks:     NewCollection[domain.Task](store.Tasks),
	}
}

// Collections returns the gateways for the services.
func (s *Store) Collections() store.Collections {
	return store.Collections{
		Users:     s.users,
		Plans:     s.plans,
		TaskLists: s.taskLists,
		Tasks:     s.tasks,
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }
