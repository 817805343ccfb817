package api

import (
	"time"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/service"
	"github.com/phrazzld/planner-api/internal/store"
)

// RegisterRequest is the payload of POST /auth/register and POST /users.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

func (req RegisterRequest) toUser() *domain.User {
	return &domain.User{Username: req.Username, Email: req.Email, Password: req.Password}
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is a partial update; absent fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}

func (req UpdateUserRequest) fields() store.Fields {
	f := store.Fields{}
	setString(f, "username", req.Username)
	setString(f, "email", req.Email)
	setString(f, "password", req.Password)
	return f
}

// CreatePlanRequest is the payload of POST /plans.
type CreatePlanRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	UserID      string `json:"user_id"     validate:"required"`
}

// UpdatePlanRequest is a partial update of title and description. It also
// serves task lists, whose mutable fields are the same.
type UpdatePlanRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (req UpdatePlanRequest) fields() store.Fields {
	f := store.Fields{}
	setString(f, "title", req.Title)
	setString(f, "description", req.Description)
	return f
}

// CreateTaskListRequest is the payload of POST /task-lists and
// POST /plans/{id}/task-lists. In the latter the plan comes from the path.
type CreateTaskListRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	UserID      string `json:"user_id"     validate:"required"`
	PlanID      string `json:"plan_id"`
}

// CreateTaskRequest is the payload of POST /task-lists/{id}/tasks. The
// owning task list comes from the path.
type CreateTaskRequest struct {
	Title       string          `json:"title"       validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	DueDate     *time.Time      `json:"due_date"    validate:"required"`
	Priority    domain.Priority `json:"priority"    validate:"required,oneof=LOW MEDIUM HIGH"`
	Status      domain.Status   `json:"status"      validate:"required,oneof=TO_DO IN_PROGRESS REVIEW DONE"`
}

func (req CreateTaskRequest) toTask() *domain.Task {
	return &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.UTC().Truncate(time.Millisecond),
		Priority:    req.Priority,
		Status:      req.Status,
	}
}

// UpdateTaskRequest is a partial update of a task.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time       `json:"due_date"`
	Priority    *domain.Priority `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *domain.Status   `json:"status"      validate:"omitempty,oneof=TO_DO IN_PROGRESS REVIEW DONE"`
}

func (req UpdateTaskRequest) fields() store.Fields {
	f := store.Fields{}
	setString(f, "title", req.Title)
	setString(f, "description", req.Description)
	if req.DueDate != nil {
		f["due_date"] = req.DueDate.UTC().Truncate(time.Millisecond)
	}
	if req.Priority != nil {
		f["priority"] = *req.Priority
	}
	if req.Status != nil {
		f["status"] = *req.Status
	}
	return f
}

func setString(f store.Fields, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

// UserResponse is a user as returned to clients. It has no password field.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginResponse defines the successful response of POST /auth/login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   string       `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// PlanResponse is a plan as returned to clients.
type PlanResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func planToResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PlanWithTaskListsResponse is a plan with its task lists embedded.
type PlanWithTaskListsResponse struct {
	PlanResponse
	TaskLists []TaskListResponse `json:"task_lists"`
}

// TaskListResponse is a task list as returned to clients.
type TaskListResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	PlanID      string    `json:"plan_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func taskListToResponse(tl *domain.TaskList) TaskListResponse {
	return TaskListResponse{
		ID:          tl.ID,
		Title:       tl.Title,
		Description: tl.Description,
		UserID:      tl.UserID,
		PlanID:      tl.PlanID,
		CreatedAt:   tl.CreatedAt,
		UpdatedAt:   tl.UpdatedAt,
	}
}

// TaskResponse is a task as returned to clients.
type TaskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TaskListID  string          `json:"task_list_id"`
	DueDate     time.Time       `json:"due_date"`
	Priority    domain.Priority `json:"priority"`
	Status      domain.Status   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		TaskListID:  t.TaskListID,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ListResponse is one page of a list endpoint plus the total match count.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

// toListResponse converts a service page with conv, always producing a
// non-nil data array.
func toListResponse[E, R any](res service.ListResult[E], conv func(*E) R) ListResponse[R] {
	data := make([]R, 0, len(res.Data))
	for i := range res.Data {
		data = append(data, conv(&res.Data[i]))
	}
	return ListResponse[R]{Data: data, Count: res.Count}
}
