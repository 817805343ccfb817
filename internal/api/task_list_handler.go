package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/service"
)

// TaskListHandler serves /task-lists.
type TaskListHandler struct {
	lists  *service.TaskListService
	logger *slog.Logger
}

// NewTaskListHandler creates a new TaskListHandler.
func NewTaskListHandler(lists *service.TaskListService, logger *slog.Logger) *TaskListHandler {
	if logger == nil {
		panic("logger cannot be nil for TaskListHandler")
	}
	return &TaskListHandler{lists: lists, logger: logger.With(slog.String("component", "task_list_handler"))}
}

// Create handles POST /task-lists.
func (h *TaskListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskListRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	tl, err := h.lists.Create(r.Context(), &domain.TaskList{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		PlanID:      req.PlanID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskListToResponse(tl))
}

// List handles GET /task-lists.
func (h *TaskListHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	res, err := h.lists.FindAll(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toListResponse(res, taskListToResponse))
}

// Get handles GET /task-lists/{task_list_id}.
func (h *TaskListHandler) Get(w http.ResponseWriter, r *http.Request) {
	tl, err := h.lists.FindByID(r.Context(), listID(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskListToResponse(tl))
}

// Update handles PATCH /task-lists/{task_list_id}.
func (h *TaskListHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlanRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	tl, err := h.lists.Update(r.Context(), listID(r), req.fields())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskListToResponse(tl))
}

// Delete handles DELETE /task-lists/{task_list_id}. Its tasks are kept.
func (h *TaskListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.lists.Delete(r.Context(), listID(r)); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Task list deleted successfully"})
}
