package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// TaskService manages tasks. Every operation is scoped to the owning task
// list: a task addressed through another list is reported as not found.
type TaskService struct {
	resource    *Resource[domain.Task, *domain.Task]
	validListID func(string) bool
}

// NewTaskService creates the task resource over coll.
func NewTaskService(coll store.Collection[domain.Task], validListID func(string) bool, logger *slog.Logger) *TaskService {
	return &TaskService{
		resource: NewResource[domain.Task](coll, ResourceConfig[domain.Task]{
			Entity:      "Task",
			SearchField: "title",
			BeforeCreate: func(_ context.Context, t *domain.Task) error {
				if !t.Priority.Valid() {
					return domain.ErrInvalidPriority
				}
				if !t.Status.Valid() {
					return domain.ErrInvalidStatus
				}
				return nil
			},
			BeforeUpdate: validateTaskFields,
		}, logger),
		validListID: validListID,
	}
}

func validateTaskFields(_ context.Context, fields store.Fields) error {
	if p, ok := fields["priority"].(domain.Priority); ok && !p.Valid() {
		return domain.ErrInvalidPriority
	}
	if s, ok := fields["status"].(domain.Status); ok && !s.Valid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *TaskService) checkList(listID string) error {
	if !s.validListID(listID) {
		return domain.InvalidIDError("task_list_id")
	}
	return nil
}

// Create adds task to the list listID.
func (s *TaskService) Create(ctx context.Context, listID string, task *domain.Task) (*domain.Task, error) {
	if err := s.checkList(listID); err != nil {
		return nil, err
	}
	task.TaskListID = listID
	return s.resource.Create(ctx, task)
}

// FindAll pages the tasks of listID.
func (s *TaskService) FindAll(ctx context.Context, listID string, params ListParams) (ListResult[domain.Task], error) {
	if err := s.checkList(listID); err != nil {
		return ListResult[domain.Task]{}, err
	}
	params.Filter = params.Filter.Where("task_list_id", listID)
	return s.resource.FindAll(ctx, params)
}

// FindByID returns the task id if it belongs to listID.
func (s *TaskService) FindByID(ctx context.Context, listID, id string) (*domain.Task, error) {
	if err := s.checkList(listID); err != nil {
		return nil, err
	}
	task, err := s.resource.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.TaskListID != listID {
		return nil, notFound("Task")
	}
	return task, nil
}

// Update applies a partial update to a task of listID.
func (s *TaskService) Update(ctx context.Context, listID, id string, fields store.Fields) (*domain.Task, error) {
	if _, err := s.FindByID(ctx, listID, id); err != nil {
		return nil, err
	}
	return s.resource.Update(ctx, id, fields)
}

// Delete removes a task of listID.
func (s *TaskService) Delete(ctx context.Context, listID, id string) error {
	if _, err := s.FindByID(ctx, listID, id); err != nil {
		return err
	}
	return s.resource.Delete(ctx, id)
}
