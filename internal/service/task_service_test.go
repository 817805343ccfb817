package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

func newTask(title string) *domain.Task {
	return &domain.Task{
		Title:    title,
		DueDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Priority: domain.PriorityMedium,
		Status:   domain.StatusToDo,
	}
}

func TestTaskScopedToList(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	listA, err := s.TaskLists.Create(ctx, &domain.TaskList{Title: "A", UserID: missingID})
	require.NoError(t, err)
	listB, err := s.TaskLists.Create(ctx, &domain.TaskList{Title: "B", UserID: missingID})
	require.NoError(t, err)

	task := newTask("Write tests")
	task.TaskListID = listB.ID
	created, err := s.Tasks.Create(ctx, listA.ID, task)
	require.NoError(t, err)
	assert.Equal(t, listA.ID, created.TaskListID)

	_, err = s.Tasks.Create(ctx, listB.ID, newTask("Other"))
	require.NoError(t, err)

	t.Run("find through owning list", func(t *testing.T) {
		got, err := s.Tasks.FindByID(ctx, listA.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Write tests", got.Title)
		assert.True(t, got.DueDate.Equal(task.DueDate))
	})

	t.Run("other list reports not found", func(t *testing.T) {
		_, err := s.Tasks.FindByID(ctx, listB.ID, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.Tasks.Update(ctx, listB.ID, created.ID, store.Fields{"title": "x"})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.Tasks.Delete(ctx, listB.ID, created.ID), ErrNotFound)
	})

	t.Run("list only returns the list's tasks", func(t *testing.T) {
		res, err := s.Tasks.FindAll(ctx, listA.ID, ListParams{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Count)
		require.Len(t, res.Data, 1)
		assert.Equal(t, created.ID, res.Data[0].ID)
	})

	t.Run("malformed list id", func(t *testing.T) {
		_, err := s.Tasks.FindAll(ctx, "list", ListParams{Limit: 10})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
		_, err = s.Tasks.Create(ctx, "list", newTask("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("update and delete through owning list", func(t *testing.T) {
		got, err := s.Tasks.Update(ctx, listA.ID, created.ID, store.Fields{"status": domain.StatusDone})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDone, got.Status)

		require.NoError(t, s.Tasks.Delete(ctx, listA.ID, created.ID))
		_, err = s.Tasks.FindByID(ctx, listA.ID, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskEnumValidation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	list, err := s.TaskLists.Create(ctx, &domain.TaskList{Title: "A", UserID: missingID})
	require.NoError(t, err)

	bad := newTask("bad priority")
	bad.Priority = domain.Priority("URGENT")
	_, err = s.Tasks.Create(ctx, list.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	bad = newTask("bad status")
	bad.Status = domain.Status("BLOCKED")
	_, err = s.Tasks.Create(ctx, list.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	created, err := s.Tasks.Create(ctx, list.ID, newTask("ok"))
	require.NoError(t, err)

	_, err = s.Tasks.Update(ctx, list.ID, created.ID, store.Fields{"priority": domain.Priority("low")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
