package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phrazzld/planner-api/internal/store"
)

// MapError converts driver errors into store errors. Duplicate key errors
// become store.ErrDuplicate, a missing document becomes store.ErrNotFound,
// and everything else is wrapped in a store.StoreError.
func MapError(collection, operation string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", store.ErrDuplicate, collection)
	default:
		return store.NewStoreError(collection, operation, "database error", err)
	}
}
