package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/service"
)

// PlanHandler serves /plans and the task lists nested under a plan.
type PlanHandler struct {
	plans  *service.PlanService
	logger *slog.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans *service.PlanService, logger *slog.Logger) *PlanHandler {
	if logger == nil {
		panic("logger cannot be nil for PlanHandler")
	}
	return &PlanHandler{plans: plans, logger: logger.With(slog.String("component", "plan_handler"))}
}

// Create handles POST /plans.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	plan, err := h.plans.Create(r.Context(), &domain.Plan{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, planToResponse(plan))
}

// List handles GET /plans.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	res, err := h.plans.FindAll(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toListResponse(res, planToResponse))
}

// Get handles GET /plans/{id}. With include_task_lists=true the plan's
// task lists are embedded.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	include, err := parseBoolQuery(r, "include_task_lists")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	id := pathID(r, "id")
	if !include {
		plan, err := h.plans.FindByID(r.Context(), id)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
		return
	}

	found, err := h.plans.FindWithTaskLists(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	lists := make([]TaskListResponse, 0, len(found.TaskLists))
	for i := range found.TaskLists {
		lists = append(lists, taskListToResponse(&found.TaskLists[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PlanWithTaskListsResponse{
		PlanResponse: planToResponse(found.Plan),
		TaskLists:    lists,
	})
}

// Update handles PATCH /plans/{id}.
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlanRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	plan, err := h.plans.Update(r.Context(), pathID(r, "id"), req.fields())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// Delete handles DELETE /plans/{id}. Attached task lists are kept.
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.plans.Delete(r.Context(), pathID(r, "id")); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Plan deleted successfully"})
}

// CreateTaskList handles POST /plans/{id}/task-lists.
func (h *PlanHandler) CreateTaskList(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskListRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	tl, err := h.plans.CreateTaskList(r.Context(), pathID(r, "id"), &domain.TaskList{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskListToResponse(tl))
}

// ListTaskLists handles GET /plans/{id}/task-lists.
func (h *PlanHandler) ListTaskLists(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	res, err := h.plans.ListTaskLists(r.Context(), pathID(r, "id"), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toListResponse(res, taskListToResponse))
}
