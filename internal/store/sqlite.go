package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Resource names a logical store resource for change notification.
type Resource string

const (
	ResourceLocation Resource = "location"
	ResourceWeather  Resource = "weather"
)

// ErrNotFound is returned when no row matches the requested key.
var ErrNotFound = errors.New("no rows for requested key")

// StorageError wraps an underlying database failure so the sync orchestrator
// can abort the current run without confusing it with a fetch or parse
// classification.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// DB wraps *sql.DB for forecast storage. The schema is applied on open;
// creates the file if missing.
type DB struct {
	*sql.DB
	observers *observerList
}

func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{DB: db, observers: newObserverList()}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
