// Package mongodb implements the store gateway on MongoDB using the official
// driver. Identifiers are ObjectIDs rendered as hex strings, searches are
// escaped case-insensitive regular expressions, and unique-index violations
// surface as store.ErrDuplicate.
package mongodb
