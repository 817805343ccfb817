package service

import (
	"log/slog"

	"github.com/phrazzld/planner-api/internal/service/auth"
	"github.com/phrazzld/planner-api/internal/store"
)

// Services bundles the four resource services.
type Services struct {
	Users     *UserService
	Plans     *PlanService
	TaskLists *TaskListService
	Tasks     *TaskService
}

// New wires every service over the given collections.
func New(c store.Collections, hasher auth.PasswordHasher, logger *slog.Logger) *Services {
	users := NewUserService(c.Users, hasher, logger)
	taskLists := NewTaskListService(c.TaskLists, c.Users.ValidID, c.Plans.ValidID, logger)
	return &Services{
		Users:     users,
		Plans:     NewPlanService(c.Plans, taskLists, c.Users.ValidID, logger),
		TaskLists: taskLists,
		Tasks:     NewTaskService(c.Tasks, c.TaskLists.ValidID, logger),
	}
}
