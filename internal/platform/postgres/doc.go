// Package postgres provides a PostgreSQL implementation of the store gateway.
// Each collection is a table of JSONB documents keyed by UUID, so the same
// entity shapes and filter semantics as the MongoDB backend apply. The schema
// is managed by goose migrations embedded in the binary.
package postgres
