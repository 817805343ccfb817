package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/platform/logger"
	"github.com/phrazzld/planner-api/internal/store"
)

// Entity is implemented by pointers to every stored entity.
type Entity interface {
	store.Document
	Stamp(now time.Time)
}

// EntityPtr constrains a type parameter to *T where *T is an Entity.
type EntityPtr[T any] interface {
	*T
	Entity
}

// Unique describes a field whose value must not repeat across documents,
// compared case-insensitively.
type Unique[T any] struct {
	Field   string
	Value   func(*T) string
	Message string
}

// ResourceConfig parameterizes a Resource for one entity type.
type ResourceConfig[T any] struct {
	// Entity is the display name used in messages, e.g. "Plan".
	Entity string
	// SearchField is the stored field matched by the list search.
	SearchField string
	// Unique, when set, is enforced on create and on updates touching it.
	Unique *Unique[T]
	// BeforeCreate runs before uniqueness checks and insertion.
	BeforeCreate func(ctx context.Context, doc *T) error
	// BeforeUpdate may rewrite the fields of a partial update.
	BeforeUpdate func(ctx context.Context, fields store.Fields) error
	// Now defaults to time.Now.
	Now func() time.Time
}

// ListParams selects a page of a collection.
type ListParams struct {
	Limit  int64
	Skip   int64
	Search string
	// Filter carries extra scoping, e.g. the owning task list.
	Filter store.Filter
}

// ListResult is one page plus the total count of matching documents.
type ListResult[T any] struct {
	Data  []T
	Count int64
}

// Resource implements the lifecycle shared by every entity.
type Resource[T any, P EntityPtr[T]] struct {
	coll   store.Collection[T]
	cfg    ResourceConfig[T]
	logger *slog.Logger
}

// NewResource binds a Resource to a collection.
func NewResource[T any, P EntityPtr[T]](
	coll store.Collection[T],
	cfg ResourceConfig[T],
	logger *slog.Logger,
) *Resource[T, P] {
	if logger == nil {
		panic("logger cannot be nil for Resource")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Resource[T, P]{
		coll:   coll,
		cfg:    cfg,
		logger: logger.With(slog.String("component", coll.Name()+"_service")),
	}
}

// ValidID reports whether id is structurally valid for the collection.
func (r *Resource[T, P]) ValidID(id string) bool {
	return r.coll.ValidID(id)
}

// Create validates, stamps and persists doc, returning it with its identifier.
func (r *Resource[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if r.cfg.BeforeCreate != nil {
		if err := r.cfg.BeforeCreate(ctx, doc); err != nil {
			return nil, err
		}
	}

	if u := r.cfg.Unique; u != nil {
		if err := r.checkUnique(ctx, u, u.Value(doc), ""); err != nil {
			return nil, err
		}
	}

	P(doc).Stamp(r.cfg.Now())

	id, err := r.coll.Insert(ctx, doc)
	if err != nil {
		if store.IsDuplicateError(err) && r.cfg.Unique != nil {
			log.Debug("unique index rejected insert", "collection", r.coll.Name())
			return nil, conflict(r.cfg.Unique.Message)
		}
		log.Error("failed to insert document", "collection", r.coll.Name(), "error", err)
		return nil, fmt.Errorf("failed to create %s: %w", r.cfg.Entity, err)
	}

	log.Debug("document created", "collection", r.coll.Name(), "id", id)
	return doc, nil
}

// FindAll returns a page of documents, newest first, and the total count of
// documents matching the search and filter.
func (r *Resource[T, P]) FindAll(ctx context.Context, params ListParams) (ListResult[T], error) {
	if params.Limit < 1 || params.Limit > store.MaxLimit || params.Skip < 0 {
		return ListResult[T]{}, ErrInvalidListParams
	}

	filter := params.Filter
	filter.SearchField = r.cfg.SearchField
	filter.Search = params.Search

	count, err := r.coll.Count(ctx, filter)
	if err != nil {
		return ListResult[T]{}, r.storeFailure(ctx, "count", err)
	}

	docs, err := r.coll.Find(ctx, filter, store.Page{Limit: params.Limit, Skip: params.Skip})
	if err != nil {
		return ListResult[T]{}, r.storeFailure(ctx, "find", err)
	}

	return ListResult[T]{Data: docs, Count: count}, nil
}

// FindByID returns the identified document. A malformed identifier fails
// with domain.ErrInvalidID, an absent one with ErrNotFound.
func (r *Resource[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	if !r.coll.ValidID(id) {
		return nil, domain.InvalidIDError(r.cfg.Entity + " id")
	}

	doc, err := r.coll.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(r.cfg.Entity)
		}
		return nil, r.storeFailure(ctx, "find", err)
	}
	return doc, nil
}

// FindOne returns the newest document matching filter.
func (r *Resource[T, P]) FindOne(ctx context.Context, filter store.Filter) (*T, error) {
	doc, err := r.coll.FindOne(ctx, filter)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(r.cfg.Entity)
		}
		return nil, r.storeFailure(ctx, "find", err)
	}
	return doc, nil
}

// Update applies a partial update and returns the refreshed document.
// updated_at is always advanced. The result is decided by whether the
// document exists, not by whether any value changed, so a repeated update
// returns 200 with the current document.
func (r *Resource[T, P]) Update(ctx context.Context, id string, fields store.Fields) (*T, error) {
	if !r.coll.ValidID(id) {
		return nil, domain.InvalidIDError(r.cfg.Entity + " id")
	}
	if fields == nil {
		fields = store.Fields{}
	}

	if r.cfg.BeforeUpdate != nil {
		if err := r.cfg.BeforeUpdate(ctx, fields); err != nil {
			return nil, err
		}
	}

	if u := r.cfg.Unique; u != nil {
		if v, ok := fields[u.Field].(string); ok {
			if err := r.checkUnique(ctx, u, v, id); err != nil {
				return nil, err
			}
		}
	}

	fields["updated_at"] = r.cfg.Now().UTC().Truncate(time.Millisecond)

	res, err := r.coll.UpdateByID(ctx, id, fields)
	if err != nil {
		if store.IsDuplicateError(err) && r.cfg.Unique != nil {
			return nil, conflict(r.cfg.Unique.Message)
		}
		return nil, r.storeFailure(ctx, "update", err)
	}
	if res.Matched == 0 {
		return nil, notFound(r.cfg.Entity)
	}

	return r.FindByID(ctx, id)
}

// Delete removes the identified document.
func (r *Resource[T, P]) Delete(ctx context.Context, id string) error {
	if !r.coll.ValidID(id) {
		return domain.InvalidIDError(r.cfg.Entity + " id")
	}

	deleted, err := r.coll.DeleteByID(ctx, id)
	if err != nil {
		return r.storeFailure(ctx, "delete", err)
	}
	if !deleted {
		return notFound(r.cfg.Entity)
	}

	logger.FromContextOrDefault(ctx, r.logger).Debug("document deleted",
		"collection", r.coll.Name(), "id", id)
	return nil
}

func (r *Resource[T, P]) checkUnique(ctx context.Context, u *Unique[T], value, selfID string) error {
	if value == "" {
		return nil
	}
	filter := store.Filter{
		EqualFold: map[string]string{u.Field: value},
		ExcludeID: selfID,
	}
	n, err := r.coll.Count(ctx, filter)
	if err != nil {
		return r.storeFailure(ctx, "count", err)
	}
	if n > 0 {
		return conflict(u.Message)
	}
	return nil
}

func (r *Resource[T, P]) storeFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrInvalidID) {
		return err
	}
	logger.FromContextOrDefault(ctx, r.logger).Error("store operation failed",
		"collection", r.coll.Name(),
		"operation", op,
		"error", err)
	return fmt.Errorf("failed to %s %s: %w", op, r.cfg.Entity, err)
}
