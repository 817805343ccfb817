// Package api serves the /api/v1 surface: authentication plus CRUD for
// users, plans, task lists and tasks. Handlers decode and validate
// requests, call the services and translate service errors into the
// {kind, error, trace_id} response body.
package api
