package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/planner-api/internal/store"
)

// Collection is a store.Collection backed by a MongoDB collection.
type Collection[T any, P store.DocumentPtr[T]] struct {
	coll *mongo.Collection
}

// NewCollection wraps coll.
func NewCollection[T any, P store.DocumentPtr[T]](coll *mongo.Collection) *Collection[T, P] {
	return &Collection[T, P]{coll: coll}
}

// Name returns the collection name.
func (c *Collection[T, P]) Name() string { return c.coll.Name() }

// ValidID reports whether id is a hex ObjectID.
func (c *Collection[T, P]) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Insert stores doc under a new ObjectID.
func (c *Collection[T, P]) Insert(ctx context.Context, doc *T) (string, error) {
	body, err := toDocument(doc)
	if err != nil {
		return "", store.NewStoreError(c.Name(), "insert", "failed to encode document", err)
	}

	oid := primitive.NewObjectID()
	body = append(bson.D{{Key: "_id", Value: oid}}, body...)

	if _, err := c.coll.InsertOne(ctx, body); err != nil {
		return "", MapError(c.Name(), "insert", err)
	}

	id := oid.Hex()
	P(doc).SetID(id)
	return id, nil
}

// FindByID loads the document with the given identifier.
func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	raw, err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Raw()
	if err != nil {
		return nil, MapError(c.Name(), "find", err)
	}
	return c.decode(raw)
}

// FindOne returns the newest document matching filter.
func (c *Collection[T, P]) FindOne(ctx context.Context, filter store.Filter) (*T, error) {
	q, err := BuildFilter(filter)
	if err != nil {
		return nil, err
	}

	raw, err := c.coll.FindOne(ctx, q, options.FindOne().SetSort(sortOrder)).Raw()
	if err != nil {
		return nil, MapError(c.Name(), "find", err)
	}
	return c.decode(raw)
}

// Find returns matching documents, newest first, windowed by page.
func (c *Collection[T, P]) Find(ctx context.Context, filter store.Filter, page store.Page) ([]T, error) {
	q, err := BuildFilter(filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(sortOrder)
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}

	cur, err := c.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, MapError(c.Name(), "find", err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		doc, err := c.decode(cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	if err := cur.Err(); err != nil {
		return nil, MapError(c.Name(), "find", err)
	}
	return out, nil
}

// Count returns the number of documents matching filter.
func (c *Collection[T, P]) Count(ctx context.Context, filter store.Filter) (int64, error) {
	q, err := BuildFilter(filter)
	if err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, q)
	if err != nil {
		return 0, MapError(c.Name(), "count", err)
	}
	return n, nil
}

// UpdateByID applies a $set of the given fields.
func (c *Collection[T, P]) UpdateByID(ctx context.Context, id string, set store.Fields) (store.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.UpdateResult{}, store.ErrInvalidID
	}

	res, err := c.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.M(set)}},
	)
	if err != nil {
		return store.UpdateResult{}, MapError(c.Name(), "update", err)
	}
	return store.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// DeleteByID removes the identified document.
func (c *Collection[T, P]) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, store.ErrInvalidID
	}

	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, MapError(c.Name(), "delete", err)
	}
	return res.DeletedCount > 0, nil
}

func (c *Collection[T, P]) decode(raw bson.Raw) (*T, error) {
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, store.NewStoreError(c.Name(), "decode", "failed to decode document", err)
	}
	oid, ok := raw.Lookup("_id").ObjectIDOK()
	if !ok {
		return nil, store.NewStoreError(c.Name(), "decode", "document has no ObjectID", nil)
	}
	P(&doc).SetID(oid.Hex())
	return &doc, nil
}

// toDocument marshals v and strips any _id so the caller controls it.
func toDocument(v any) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("re-decode: %w", err)
	}
	out := d[:0]
	for _, e := range d {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return out, nil
}
