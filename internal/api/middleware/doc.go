// Package middleware contains the HTTP middleware of the API: request
// tracing, bearer authentication and per-client rate limiting.
package middleware
