// Package shared holds the HTTP plumbing used by both the handlers and the
// middleware: JSON decoding and validation, error and JSON responses, and
// request context keys such as the trace ID.
package shared
