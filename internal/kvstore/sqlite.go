package kvstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kivosy/factory/internal/log"
)

// Schema for the kv table. Applied on open.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLite is a Store backed by a local SQLite database.
//
// A single table maps keys to values. An optional capacity ceiling (in
// bytes, summed over all values) models the bounded browser-style store:
// writes that would exceed it fail with ErrCapacityExceeded instead of
// silently truncating.
type SQLite struct {
	db       *sql.DB
	maxBytes int64 // 0 = unbounded
	logger   log.Logger
}

// SQLiteOption configures an SQLite store.
type SQLiteOption func(*SQLite)

// WithCapacity sets the capacity ceiling in bytes. Zero means unbounded.
func WithCapacity(maxBytes int64) SQLiteOption {
	return func(s *SQLite) { s.maxBytes = maxBytes }
}

// OpenSQLite opens (creating if necessary) a SQLite-backed store at path.
// Pass ":memory:" for an ephemeral store.
func OpenSQLite(path string, logger log.Logger, opts ...SQLiteOption) (*SQLite, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", path, err)
	}

	// The store is accessed from a single goroutine per operation, but the
	// CLI may interleave reads and writes; a single connection keeps SQLite's
	// locking out of the picture.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store schema: %w", err)
	}

	s := &SQLite{db: db, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the value for key, or ErrKeyNotFound.
func (s *SQLite) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading key %s: %w", key, err)
	}
	return value, nil
}

// Set writes value under key. If a capacity ceiling is configured and the
// write would exceed it, Set fails with ErrCapacityExceeded and leaves the
// previous value intact.
func (s *SQLite) Set(key, value string) error {
	if s.maxBytes > 0 {
		used, err := s.usedBytesExcluding(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.maxBytes {
			s.logger.Warn("write rejected, capacity exceeded",
				"key", key,
				"value_bytes", len(value),
				"used_bytes", used,
				"max_bytes", s.maxBytes)
			return fmt.Errorf("writing key %s: %w", key, ErrCapacityExceeded)
		}
	}

	if _, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Absent keys are a no-op.
func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// usedBytesExcluding sums stored value sizes, excluding the key about to be
// overwritten so that replacing a large value with a smaller one succeeds.
func (s *SQLite) usedBytesExcluding(key string) (int64, error) {
	var used sql.NullInt64
	err := s.db.QueryRow(
		`SELECT SUM(LENGTH(CAST(value AS BLOB))) FROM kv WHERE key != ?`, key).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("computing store usage: %w", err)
	}
	return used.Int64, nil
}
