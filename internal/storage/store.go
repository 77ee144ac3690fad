package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// DefaultQuotaBytes mirrors the 5 MiB budget browsers conventionally grant
// localStorage, which is where the web build kept this data.
const DefaultQuotaBytes = 5 << 20

var (
	// ErrKeyNotFound is returned by Get for keys that were never set.
	ErrKeyNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned by Set when the write would push total
	// stored bytes past the configured quota.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Store persists small blobs under string keys with an enforced byte quota.
type Store struct {
	db    *sql.DB
	quota int64
}

// Open creates or opens the backing database at path. A quota of zero or
// less selects DefaultQuotaBytes.
func Open(path string, quota int64) (*Store, error) {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, quota: quota}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Set writes value under key, replacing any previous value. The quota check
// counts every other key's current size plus the incoming value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	var others int64
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv WHERE key != ?`, key)
	if err := row.Scan(&others); err != nil {
		return fmt.Errorf("failed to measure stored size: %w", err)
	}

	if others+int64(len(value)) > s.quota {
		return ErrQuotaExceeded
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
