package memstore

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phrazzld/planner-api/internal/store"
)

// entry is a stored document. raw is replaced, never mutated in place, so
// a copy taken under the lock stays consistent after the lock is released.
type entry struct {
	id  string
	seq uint64
	raw bson.Raw
}

// Collection is a goroutine-safe in-memory store.Collection.
type Collection[T any, P store.DocumentPtr[T]] struct {
	name       string
	uniqueFold []string

	mu   sync.RWMutex
	seq  uint64
	docs map[string]*entry
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	uniqueFold []string
}

// WithUniqueFold enforces case-insensitive uniqueness of a string field,
// mirroring a unique index with a case-insensitive collation.
func WithUniqueFold(field string) Option {
	return func(o *options) { o.uniqueFold = append(o.uniqueFold, field) }
}

// NewCollection creates an empty collection.
func NewCollection[T any, P store.DocumentPtr[T]](name string, opts ...Option) *Collection[T, P] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T, P]{
		name:       name,
		uniqueFold: o.uniqueFold,
		docs:       make(map[string]*entry),
	}
}

// Name returns the collection name.
func (c *Collection[T, P]) Name() string { return c.name }

// ValidID reports whether id is a hex ObjectID.
func (c *Collection[T, P]) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Insert marshals doc, assigns a new ObjectID and stores it.
func (c *Collection[T, P]) Insert(ctx context.Context, doc *T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", store.NewStoreError(c.name, "insert", "failed to encode document", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkUnique(bson.Raw(raw), ""); err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	c.seq++
	c.docs[id] = &entry{id: id, seq: c.seq, raw: raw}
	P(doc).SetID(id)
	return id, nil
}

// FindByID returns the document with the given identifier.
func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	if !c.ValidID(id) {
		return nil, store.ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	e, ok := c.docs[id]
	var snapshot entry
	if ok {
		snapshot = *e
	}
	c.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return c.decode(snapshot)
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	matched := c.matching(filter)
	c.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		ti := createdAt(matched[i].raw)
		tj := createdAt(matched[j].raw)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return matched[i].seq > matched[j].seq
	})

	if page.Skip > 0 {
		if page.Skip >= int64(len(matched)) {
			return []T{}, nil
		}
		matched = matched[page.Skip:]
	}
	if page.Limit > 0 && page.Limit < int64(len(matched)) {
		matched = matched[:page.Limit]
	}

	out := make([]T, 0, len(matched))
	for _, e := range matched {
		doc, err := c.decode(e)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

// Count returns the number of documents matching filter.
func (c *Collection[T, P]) Count(ctx context.Context, filter store.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.matching(filter))), nil
}

// UpdateByID overwrites top-level fields of the identified document.
func (c *Collection[T, P]) UpdateByID(ctx context.Context, id string, set store.Fields) (store.UpdateResult, error) {
	if !c.ValidID(id) {
		return store.UpdateResult{}, store.ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.docs[id]
	if !ok {
		return store.UpdateResult{}, nil
	}

	var d bson.D
	if err := bson.Unmarshal(e.raw, &d); err != nil {
		return store.UpdateResult{}, store.NewStoreError(c.name, "update", "failed to decode document", err)
	}
	d = applyFields(d, set)

	raw, err := bson.Marshal(d)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError(c.name, "update", "failed to encode document", err)
	}
	if err := c.checkUnique(bson.Raw(raw), id); err != nil {
		return store.UpdateResult{}, err
	}

	res := store.UpdateResult{Matched: 1}
	if !bytes.Equal(raw, e.raw) {
		res.Modified = 1
		e.raw = raw
	}
	return res, nil
}

// DeleteByID removes the identified document.
func (c *Collection[T, P]) DeleteByID(ctx context.Context, id string) (bool, error) {
	if !c.ValidID(id) {
		return false, store.ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	return true, nil
}

func (c *Collection[T, P]) decode(e entry) (*T, error) {
	var doc T
	if err := bson.Unmarshal(e.raw, &doc); err != nil {
		return nil, store.NewStoreError(c.name, "decode", "failed to decode document", err)
	}
	P(&doc).SetID(e.id)
	return &doc, nil
}

// matching must be called with c.mu held. It returns copies of the
// matching entries, safe to read after the lock is released.
func (c *Collection[T, P]) matching(filter store.Filter) []entry {
	out := make([]entry, 0, len(c.docs))
	for _, e := range c.docs {
		if Matches(e.id, e.raw, filter) {
			out = append(out, *e)
		}
	}
	return out
}

// checkUnique must be called with c.mu held.
func (c *Collection[T, P]) checkUnique(raw bson.Raw, selfID string) error {
	for _, field := range c.uniqueFold {
		value, ok := raw.Lookup(field).StringValueOK()
		if !ok || value == "" {
			continue
		}
		for id, e := range c.docs {
			if id == selfID {
				continue
			}
			if other, ok := e.raw.Lookup(field).StringValueOK(); ok && strings.EqualFold(other, value) {
				return fmt.Errorf("%w: %s", store.ErrDuplicate, field)
			}
		}
	}
	return nil
}

// Matches reports whether the document with identifier id and body raw
// satisfies filter.
func Matches(id string, raw bson.Raw, filter store.Filter) bool {
	if filter.ExcludeID != "" && id == filter.ExcludeID {
		return false
	}
	for field, want := range filter.Equals {
		if stringField(raw, field) != want {
			return false
		}
	}
	for field, want := range filter.EqualFold {
		if !strings.EqualFold(stringField(raw, field), want) {
			return false
		}
	}
	if filter.HasSearch() {
		value := strings.ToLower(stringField(raw, filter.SearchField))
		if !strings.Contains(value, strings.ToLower(filter.Search)) {
			return false
		}
	}
	return true
}

func stringField(raw bson.Raw, field string) string {
	v, err := raw.LookupErr(field)
	if err != nil {
		return ""
	}
	s, _ := v.StringValueOK()
	return s
}

func createdAt(raw bson.Raw) time.Time {
	t, _ := raw.Lookup("created_at").TimeOK()
	return t
}

func applyFields(d bson.D, set store.Fields) bson.D {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		replaced := false
		for i := range d {
			if d[i].Key == k {
				d[i].Value = set[k]
				replaced = true
				break
			}
		}
		if !replaced {
			d = append(d, bson.E{Key: k, Value: set[k]})
		}
	}
	return d
}
