package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// Store is a connected MongoDB database holding the planner collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Backend = (*Store)(nil)

// Connect opens a client for uri, verifies it with a ping and ensures the
// indexes the gateway relies on.
func Connect(ctx context.Context, uri, database string, logger *slog.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", slog.String("database", database))
	return s, nil
}

// EnsureIndexes creates the indexes used for uniqueness, scoping and ordering.
// It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	caseInsensitive := options.Collation{Locale: "en", Strength: 2}

	specs := map[string][]mongo.IndexModel{
		store.Users: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive).SetName("email_unique"),
			},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		store.Plans: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		store.TaskLists: {
			{Keys: bson.D{{Key: "plan_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		store.Tasks: {
			{Keys: bson.D{{Key: "task_list_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Collections returns the gateways for the services.
func (s *Store) Collections() store.Collections {
	return store.Collections{
		Users:     NewCollection[domain.User](s.db.Collection(store.Users)),
		Plans:     NewCollection[domain.Plan](s.db.Collection(store.Plans)),
		TaskLists: NewCollection[domain.TaskList](s.db.Collection(store.TaskLists)),
		Tasks:     NewCollection[domain.Task](s.db.Collection(store.Tasks)),
	}
}

// Ping checks connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
