// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists external converter results in SQLite, keyed by
// converter identity and input text. Table fragments carry no tokens, so an
// unchanged table hits across runs. Tokenized documents embed fresh random
// tokens on every run and only hit when the same tokenized text is converted
// again.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a key/value cache of converter output backed by SQLite.
type Store struct {
	db *sql.DB
}

// Key derives a cache key from the converter identity and its input.
func Key(namespace, input string) string {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte{0})
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// Open opens or creates the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		key TEXT PRIMARY KEY,
		output TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached output for key. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var out string
	err := s.db.QueryRowContext(ctx, `SELECT output FROM conversions WHERE key = ?`, key).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache entry: %w", err)
	}
	return out, true, nil
}

// Put stores output under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, output string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (key, output, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET output = excluded.output, created_at = excluded.created_at`,
		key, output, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}

// Clear removes every cached entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversions`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
