package store

import (
	"context"

	"github.com/phrazzld/planner-api/internal/domain"
)

// Collection names shared by every backend.
const (
	Users     = "users"
	Plans     = "plans"
	TaskLists = "task_lists"
	Tasks     = "tasks"
)

// Paging bounds applied to every list operation.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Document is implemented by every stored entity. The identifier is assigned
// by the store on insert and is opaque to callers.
type Document interface {
	GetID() string
	SetID(id string)
}

// DocumentPtr constrains a type parameter to *T where *T is a Document.
type DocumentPtr[T any] interface {
	*T
	Document
}

// Fields is a set of top-level document fields to overwrite, keyed by their
// stored name (the json/bson tag of the entity field).
type Fields map[string]any

// Filter selects documents. All non-empty criteria must hold.
type Filter struct {
	// Equals requires the named string fields to match exactly.
	Equals map[string]string
	// EqualFold requires the named string fields to match ignoring case.
	EqualFold map[string]string
	// SearchField and Search select documents whose SearchField contains
	// Search as a case-insensitive literal substring. An empty Search
	// matches everything.
	SearchField string
	Search      string
	// ExcludeID removes the document with this identifier from the result.
	ExcludeID string
}

// Where returns a copy of f additionally requiring field == value.
func (f Filter) Where(field, value string) Filter {
	eq := make(map[string]string, len(f.Equals)+1)
	for k, v := range f.Equals {
		eq[k] = v
	}
	eq[field] = value
	f.Equals = eq
	return f
}

// HasSearch reports whether the filter carries a substring search.
func (f Filter) HasSearch() bool {
	return f.SearchField != "" && f.Search != ""
}

// Page selects a window of an ordered result by offset.
type Page struct {
	Limit int64
	Skip  int64
}

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Collection is the gateway to one document collection. Implementations
// order Find results by created_at descending.
type Collection[T any] interface {
	// Name returns the collection name.
	Name() string
	// ValidID reports whether id is structurally a valid identifier.
	ValidID(id string) bool
	// Insert stores doc, assigns its identifier and returns it.
	// Returns ErrDuplicate when a unique index is violated.
	Insert(ctx context.Context, doc *T) (string, error)
	// FindByID returns ErrInvalidID or ErrNotFound on failure.
	FindByID(ctx context.Context, id string) (*T, error)
	// FindOne returns the newest matching document or ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Find(ctx context.Context, filter Filter, page Page) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	// UpdateByID overwrites the given fields. Matched is zero when no
	// document has the identifier.
	UpdateByID(ctx context.Context, id string, set Fields) (UpdateResult, error)
	// DeleteByID reports whether a document was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// Collections bundles the four gateways the services depend on.
type Collections struct {
	Users     Collection[domain.User]
	Plans     Collection[domain.Plan]
	TaskLists Collection[domain.TaskList]
	Tasks     Collection[domain.Task]
}

// Backend is an opened store with its collections.
type Backend interface {
	Collections() Collections
	// Ping checks connectivity to the underlying database.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
