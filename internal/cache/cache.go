// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache is a TTL-bounded key/value store for computed reports,
// backed by SQLite. Single-process use; concurrent access from multiple
// processes is unguarded.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "cache.db"

// DefaultTTL is how long an entry stays fresh unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// now is the clock; tests substitute it to exercise expiry.
var now = time.Now

// Cache stores serialized values with a creation timestamp.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens or creates the cache database at dir/cache.db, creating the
// schema and the directory if needed. A ttl of 0 uses DefaultTTL.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		created_at REAL NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the stored value for key if present and fresh. A stale entry
// is evicted as a side effect and reported as absent. Storage errors
// propagate.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var value string
	var createdAt float64
	err := c.db.QueryRow(
		`SELECT value, created_at FROM cache WHERE key = ?`, key,
	).Scan(&value, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	age := now().Sub(time.Unix(int64(createdAt), 0))
	if age > c.ttl {
		if err := c.Delete(key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	return []byte(value), true, nil
}

// Set stores value under key with the current timestamp, replacing any
// prior entry.
func (c *Cache) Set(key string, value []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO cache (key, value, created_at) VALUES (?, ?, ?)`,
		key, string(value), float64(now().Unix()),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key unconditionally. Deleting an absent key
// is not an error.
func (c *Cache) Delete(key string) error {
	if _, err := c.db.Exec(`DELETE FROM cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM cache`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
