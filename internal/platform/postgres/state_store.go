package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/solenne/arcana-api/internal/store"
)

// DBTX abstracts the database access layer. It is implemented by both
// *sql.DB and *sql.Tx, allowing the store to work with either a connection
// pool or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StateStore implements the store.StateStore interface using a PostgreSQL
// database as the storage backend.
type StateStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewStateStore creates a new PostgreSQL implementation of the StateStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewStateStore(db DBTX, logger *slog.Logger) *StateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{
		db:     db,
		logger: logger.With(slog.String("component", "state_store")),
	}
}

// Ensure StateStore implements store.StateStore interface
var _ store.StateStore = (*StateStore)(nil)

// Get implements store.StateStore.Get.
// Returns store.ErrKeyNotFound if the key has never been written.
func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		s.logger.Error("failed to read state key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(key, "get", err)
	}
	return value, nil
}

// Set implements store.StateStore.Set with an upsert.
func (s *StateStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		s.logger.Error("failed to write state key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.NewStoreError(key, "set", err)
	}
	return nil
}

// Delete implements store.StateStore.Delete. Deleting an absent key is not
// an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = $1`, key)
	if err != nil {
		s.logger.Error("failed to delete state key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.NewStoreError(key, "delete", err)
	}
	return nil
}
