package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// PlanService manages plans and the task lists attached to them.
type PlanService struct {
	*Resource[domain.Plan, *domain.Plan]
	taskLists *TaskListService
}

// NewPlanService creates the plan resource over coll. validUserID checks the
// shape of the owning user reference; existence is not enforced.
func NewPlanService(
	coll store.Collection[domain.Plan],
	taskLists *TaskListService,
	validUserID func(string) bool,
	logger *slog.Logger,
) *PlanService {
	return &PlanService{
		Resource: NewResource[domain.Plan](coll, ResourceConfig[domain.Plan]{
			Entity:      "Plan",
			SearchField: "title",
			BeforeCreate: func(_ context.Context, p *domain.Plan) error {
				if !validUserID(p.UserID) {
					return domain.InvalidIDError("user_id")
				}
				return nil
			},
		}, logger),
		taskLists: taskLists,
	}
}

// PlanWithTaskLists is a plan together with its attached task lists.
type PlanWithTaskLists struct {
	Plan      *domain.Plan
	TaskLists []domain.TaskList
}

// FindWithTaskLists returns the plan and up to store.MaxLimit of its task
// lists, newest first.
func (s *PlanService) FindWithTaskLists(ctx context.Context, id string) (*PlanWithTaskLists, error) {
	plan, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lists, err := s.taskLists.FindAll(ctx, ListParams{
		Limit:  store.MaxLimit,
		Filter: store.Filter{}.Where("plan_id", plan.ID),
	})
	if err != nil {
		return nil, err
	}
	return &PlanWithTaskLists{Plan: plan, TaskLists: lists.Data}, nil
}

// ListTaskLists pages the task lists attached to an existing plan.
func (s *PlanService) ListTaskLists(ctx context.Context, planID string, params ListParams) (ListResult[domain.TaskList], error) {
	if _, err := s.FindByID(ctx, planID); err != nil {
		return ListResult[domain.TaskList]{}, err
	}
	params.Filter = params.Filter.Where("plan_id", planID)
	return s.taskLists.FindAll(ctx, params)
}

// CreateTaskList creates a task list attached to an existing plan.
func (s *PlanService) CreateTaskList(ctx context.Context, planID string, tl *domain.TaskList) (*domain.TaskList, error) {
	if _, err := s.FindByID(ctx, planID); err != nil {
		return nil, err
	}
	tl.PlanID = planID
	return s.taskLists.Create(ctx, tl)
}
