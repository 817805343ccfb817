package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// TaskListService manages task lists.
type TaskListService struct {
	*Resource[domain.TaskList, *domain.TaskList]
}

// NewTaskListService creates the task list resource over coll. validUserID
// and validPlanID check reference shapes only.
func NewTaskListService(
	coll store.Collection[domain.TaskList],
	validUserID func(string) bool,
	validPlanID func(string) bool,
	logger *slog.Logger,
) *TaskListService {
	return &TaskListService{
		Resource: NewResource[domain.TaskList](coll, ResourceConfig[domain.TaskList]{
			Entity:      "Task list",
			SearchField: "title",
			BeforeCreate: func(_ context.Context, tl *domain.TaskList) error {
				if !validUserID(tl.UserID) {
					return domain.InvalidIDError("user_id")
				}
				if tl.PlanID != "" && !validPlanID(tl.PlanID) {
					return domain.InvalidIDError("plan_id")
				}
				return nil
			},
		}, logger),
	}
}
