package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/store"
)

// Store is an open PostgreSQL database holding the planner tables.
type Store struct {
	db *sql.DB
}

var _ store.Backend = (*Store)(nil)

// Open establishes a connection pool to url and verifies it with a ping.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool, e.g. for migrations.
func (s *Store) DB() *sql.DB { return s.db }

// Collections returns the gateways for the services.
func (s *Store) Collections() store.Collections {
	return store.Collections{
		Users:     NewCollection[domain.User](s.db, store.Users),
		Plans:     NewCollection[domain.Plan](s.db, store.Plans),
		TaskLists: NewCollection[domain.TaskList](s.db, store.TaskLists),
		Tasks:     NewCollection[domain.Task](s.db, store.Tasks),
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the pool.
func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
