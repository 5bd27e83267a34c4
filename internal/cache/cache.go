// Package cache keeps raw analyzer replies in a local sqlite database so a
// forced reclassification can rebuild every output without paying for the
// backend calls again.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Cache struct {
	conn *sql.DB
}

// Open connects to the cache database at path, creating the schema on first
// use. Use ":memory:" for an ephemeral cache.
func Open(path string) (*Cache, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	c := &Cache{conn: conn}
	if err := c.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create cache tables: %w", err)
	}
	return c, nil
}

func (c *Cache) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		folder TEXT NOT NULL,
		file TEXT NOT NULL,
		mode TEXT NOT NULL,
		raw_response TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE(folder, file, mode)
	);
	`
	_, err := c.conn.Exec(query)
	return err
}

// Get returns the cached raw reply for a photo, if any.
func (c *Cache) Get(ctx context.Context, folder, file, mode string) (string, bool, error) {
	query := `SELECT raw_response FROM analyses WHERE folder = ? AND file = ? AND mode = ?`

	var raw string
	err := c.conn.QueryRowContext(ctx, query, folder, file, mode).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query cache: %w", err)
	}
	return raw, true, nil
}

// Put stores the raw reply for a photo, replacing any earlier entry for the
// same (folder, file, mode).
func (c *Cache) Put(ctx context.Context, folder, file, mode, raw string) error {
	query := `
		INSERT INTO analyses (id, folder, file, mode, raw_response, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(folder, file, mode) DO UPDATE SET
			raw_response = excluded.raw_response,
			created_at = excluded.created_at`

	_, err := c.conn.ExecContext(ctx, query,
		uuid.New().String(), folder, file, mode, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.conn.Close()
}
