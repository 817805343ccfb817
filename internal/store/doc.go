// Package store defines the document store gateway used by the services.
// A Collection abstracts one collection as insert/find/update/delete
// operations over entities with opaque, store-assigned identifiers, so the
// business rules stay independent of whether documents live in MongoDB,
// Postgres JSONB or process memory.
package store
