package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/service"
)

// TaskHandler serves /task-lists/{task_list_id}/tasks.
type TaskHandler struct {
	tasks  *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{tasks: tasks, logger: logger.With(slog.String("component", "task_handler"))}
}

func listID(r *http.Request) string {
	return pathID(r, "task_list_id")
}

// Create handles POST /task-lists/{task_list_id}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	task, err := h.tasks.Create(r.Context(), listID(r), req.toTask())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// List handles GET /task-lists/{task_list_id}/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	res, err := h.tasks.FindAll(r.Context(), listID(r), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toListResponse(res, taskToResponse))
}

// Get handles GET /task-lists/{task_list_id}/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.FindByID(r.Context(), listID(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PATCH /task-lists/{task_list_id}/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}
	task, err := h.tasks.Update(r.Context(), listID(r), pathID(r, "id"), req.fields())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /task-lists/{task_list_id}/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), listID(r), pathID(r, "id")); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Task deleted successfully"})
}
