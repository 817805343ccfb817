// Package memstore is an in-process implementation of the store gateway.
// Documents are held as marshalled BSON with ObjectID identifiers, so field
// naming, identifier format and filter semantics follow the MongoDB backend.
// It backs the test suites and the "memory" store driver.
package memstore
