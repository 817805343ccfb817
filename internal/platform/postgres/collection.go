package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/phrazzld/planner-api/internal/store"
)

// Collection is a store.Collection backed by a table of JSONB documents.
type Collection[T any, P store.DocumentPtr[T]] struct {
	db    *sql.DB
	table string
}

// NewCollection returns a gateway for table. The table name must be one of
// the collection names created by the migrations.
func NewCollection[T any, P store.DocumentPtr[T]](db *sql.DB, table string) *Collection[T, P] {
	switch table {
	case store.Users, store.Plans, store.TaskLists, store.Tasks:
	default:
		panic(fmt.Sprintf("postgres: unknown collection %q", table))
	}
	return &Collection[T, P]{db: db, table: table}
}

// Name returns the table name.
func (c *Collection[T, P]) Name() string { return c.table }

// ValidID reports whether id is a UUID.
func (c *Collection[T, P]) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Insert stores doc under a new UUID.
func (c *Collection[T, P]) Insert(ctx context.Context, doc *T) (string, error) {
	id := uuid.New()
	P(doc).SetID(id.String())

	body, err := json.Marshal(doc)
	if err != nil {
		P(doc).SetID("")
		return "", store.NewStoreError(c.table, "insert", "failed to encode document", err)
	}

	q := fmt.Sprintf("INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)", c.table)
	if _, err := c.db.ExecContext(ctx, q, id, string(body)); err != nil {
		P(doc).SetID("")
		return "", c.wrap("insert", err)
	}
	return id.String(), nil
}

// FindByID loads the document with the given identifier.
func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	q := fmt.Sprintf("SELECT id, doc FROM %s WHERE id = $1", c.table)
	row := c.db.QueryRowContext(ctx, q, uid)
	doc, err := c.scan(row)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	return doc, nil
}

// FindOne returns the newest document matching filter.
func (c *Collection[T, P]) FindOne(ctx context.Context, filter store.Filter) (*T, error) {
	docs, err := c.Find(ctx, filter, store.Page{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	return &docs[0], nil
}

// Find returns matching documents, newest first, windowed by page.
func (c *Collection[T, P]) Find(ctx context.Context, filter store.Filter, page store.Page) ([]T, error) {
	q, args, err := selectQuery(c.table, filter, page)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		doc, err := c.scan(rows)
		if err != nil {
			return nil, c.wrap("find", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, c.wrap("find", err)
	}
	return out, nil
}

// Count returns the number of documents matching filter.
func (c *Collection[T, P]) Count(ctx context.Context, filter store.Filter) (int64, error) {
	q, args, err := countQuery(c.table, filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := c.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

// UpdateByID merges set into the stored document.
func (c *Collection[T, P]) UpdateByID(ctx context.Context, id string, set store.Fields) (store.UpdateResult, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return store.UpdateResult{}, store.ErrInvalidID
	}

	patch, err := json.Marshal(set)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError(c.table, "update", "failed to encode fields", err)
	}

	q := fmt.Sprintf(`WITH old AS (SELECT doc FROM %[1]s WHERE id = $1 FOR UPDATE)
UPDATE %[1]s SET doc = %[1]s.doc || $2::jsonb FROM old WHERE %[1]s.id = $1
RETURNING %[1]s.doc IS DISTINCT FROM old.doc`, c.table)

	var modified bool
	err = c.db.QueryRowContext(ctx, q, uid, string(patch)).Scan(&modified)
	if errors.Is(err, sql.ErrNoRows) {
		return store.UpdateResult{}, nil
	}
	if err != nil {
		return store.UpdateResult{}, c.wrap("update", err)
	}

	res := store.UpdateResult{Matched: 1}
	if modified {
		res.Modified = 1
	}
	return res, nil
}

// DeleteByID removes the identified document.
func (c *Collection[T, P]) DeleteByID(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, store.ErrInvalidID
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table)
	result, err := c.db.ExecContext(ctx, q, uid)
	if err != nil {
		return false, c.wrap("delete", err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return false, c.wrap("delete", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (c *Collection[T, P]) scan(s scanner) (*T, error) {
	var (
		id   uuid.UUID
		body []byte
	)
	if err := s.Scan(&id, &body); err != nil {
		return nil, err
	}

	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	P(&doc).SetID(id.String())
	return &doc, nil
}

// wrap maps err and attaches the collection and operation unless it is
// already one of the store sentinels callers branch on.
func (c *Collection[T, P]) wrap(operation string, err error) error {
	mapped := MapError(err)
	if store.IsNotFoundError(mapped) || store.IsDuplicateError(mapped) {
		return mapped
	}
	return store.NewStoreError(c.table, operation, "database error", mapped)
}
