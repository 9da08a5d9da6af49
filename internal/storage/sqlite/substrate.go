package sqlite

import (
	"context"
	"database/sql"
	"time"

	"taskman/internal/errors"
	"taskman/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// DefaultMaxValueBytes is the fixed capacity ceiling for a single stored
// value. It mirrors the quota a browser grants local storage. The limit
// is a documented constant, never discovered by probing the database.
const DefaultMaxValueBytes = 5 << 20 // 5 MiB

// Substrate is a key-value substrate backed by a SQLite database.
type Substrate struct {
	db            *sql.DB
	maxValueBytes int
}

// New opens (or creates) the database at dbPath and applies pending
// migrations. The default value capacity applies.
func New(ctx context.Context, dbPath string) (*Substrate, error) {
	return NewWithCapacity(ctx, dbPath, DefaultMaxValueBytes)
}

// NewWithCapacity opens the database with an explicit per-value capacity
// ceiling. A non-positive capacity falls back to the default.
func NewWithCapacity(ctx context.Context, dbPath string, maxValueBytes int) (*Substrate, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	if maxValueBytes <= 0 {
		maxValueBytes = DefaultMaxValueBytes
	}

	return &Substrate{db: db, maxValueBytes: maxValueBytes}, nil
}

// MaxValueBytes returns the configured per-value capacity ceiling.
func (s *Substrate) MaxValueBytes() int {
	return s.maxValueBytes
}

// Get returns the value stored under key.
func (s *Substrate) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM entries WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFoundError("key", key)
	}
	if err != nil {
		return "", errors.NewStorageError("get value", err)
	}
	return value, nil
}

// Set writes value under key, replacing any previous value. Values over
// the capacity ceiling are rejected before touching the database.
func (s *Substrate) Set(ctx context.Context, key string, value string) error {
	if len(value) > s.maxValueBytes {
		return errors.NewCapacityError(key, len(value), s.maxValueBytes)
	}

	query := `
	INSERT INTO entries (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().Format(time.RFC3339)); err != nil {
		return errors.NewStorageError("set value", err)
	}
	return nil
}

// Remove deletes the value under key. Missing keys are not an error.
func (s *Substrate) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM entries WHERE key = ?`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return errors.NewStorageError("remove value", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Substrate) Close() error {
	return s.db.Close()
}
