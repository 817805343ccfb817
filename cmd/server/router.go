package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/planner-api/internal/api"
	apiMiddleware "github.com/phrazzld/planner-api/internal/api/middleware"
)

// setupRouter creates the application router with its middleware stack,
// the health check and the /api/v1 routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	handlers := &api.Handlers{
		Auth:      api.NewAuthHandler(app.services.Users, app.tokens, app.logger),
		Users:     api.NewUserHandler(app.services.Users, app.logger),
		Plans:     api.NewPlanHandler(app.services.Plans, app.logger),
		TaskLists: api.NewTaskListHandler(app.services.TaskLists, app.logger),
		Tasks:     api.NewTaskHandler(app.services.Tasks, app.logger),
	}
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokens, app.services.Users, app.logger)

	var rateLimit func(http.Handler) http.Handler
	if app.limiter != nil {
		rateLimit = apiMiddleware.RateLimit(app.limiter, app.logger)
	}

	healthTimeout := time.Duration(app.config.Store.TimeoutSeconds) * time.Second
	r.Method(http.MethodGet, "/health", api.NewHealthHandler(app.store, healthTimeout, app.logger))
	r.Mount("/api/v1", handlers.Routes(authMiddleware.Authenticate, rateLimit))

	return r
}
