package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers bundles the handlers mounted under /api/v1.
type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Plans     *PlanHandler
	TaskLists *TaskListHandler
	Tasks     *TaskHandler
}

// Routes builds the /api/v1 router. authenticate guards the profile
// endpoint; rateLimit, when not nil, throttles every /auth route.
func (h *Handlers) Routes(authenticate, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(authenticate).Get("/profile", h.Auth.Profile)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Users.Create)
		r.Get("/", h.Users.List)
		r.Get("/{id}", h.Users.Get)
		r.Patch("/{id}", h.Users.Update)
		r.Delete("/{id}", h.Users.Delete)
	})

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", h.Plans.Create)
		r.Get("/", h.Plans.List)
		r.Get("/{id}", h.Plans.Get)
		r.Patch("/{id}", h.Plans.Update)
		r.Delete("/{id}", h.Plans.Delete)
		r.Post("/{id}/task-lists", h.Plans.CreateTaskList)
		r.Get("/{id}/task-lists", h.Plans.ListTaskLists)
	})

	r.Route("/task-lists", func(r chi.Router) {
		r.Post("/", h.TaskLists.Create)
		r.Get("/", h.TaskLists.List)
		r.Get("/{task_list_id}", h.TaskLists.Get)
		r.Patch("/{task_list_id}", h.TaskLists.Update)
		r.Delete("/{task_list_id}", h.TaskLists.Delete)

		r.Route("/{task_list_id}/tasks", func(r chi.Router) {
			r.Post("/", h.Tasks.Create)
			r.Get("/", h.Tasks.List)
			r.Get("/{id}", h.Tasks.Get)
			r.Patch("/{id}", h.Tasks.Update)
			r.Delete("/{id}", h.Tasks.Delete)
		})
	})

	return r
}
