// Package cache provides the always-on local persistence layer: a small
// SQLite database with two independent logical slots, one for the combined
// snapshot and one for the remembered external-file connection. Both
// survive process restarts; they are read once at startup and written on
// every mutation.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Slot keys.
const (
	slotSnapshot   = "snapshot"
	slotConnection = "connection"
)

// Connection records the external file connected in a previous session.
type Connection struct {
	Backend string `json:"backend"`
	Ref     string `json:"ref"`
}

// Cache is the local key-value store.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// initSchema creates the slot table if it doesn't exist.
func (c *Cache) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS slots (
			key     TEXT PRIMARY KEY,
			value   BLOB NOT NULL,
			updated TEXT NOT NULL
		);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) put(key string, value []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO slots (key, value, updated) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write cache slot %s: %w", key, err)
	}
	return nil
}

func (c *Cache) get(key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache slot %s: %w", key, err)
	}
	return value, true, nil
}

func (c *Cache) clear(key string) error {
	if _, err := c.db.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear cache slot %s: %w", key, err)
	}
	return nil
}

// PutSnapshot stores the encoded snapshot.
func (c *Cache) PutSnapshot(data []byte) error {
	return c.put(slotSnapshot, data)
}

// GetSnapshot returns the stored snapshot, if any.
func (c *Cache) GetSnapshot() ([]byte, bool, error) {
	return c.get(slotSnapshot)
}

// PutConnection remembers the external-file connection.
func (c *Cache) PutConnection(conn Connection) error {
	data, err := json.Marshal(conn)
	if err != nil {
		return fmt.Errorf("encode connection: %w", err)
	}
	return c.put(slotConnection, data)
}

// GetConnection returns the remembered connection, if any.
func (c *Cache) GetConnection() (Connection, bool, error) {
	data, ok, err := c.get(slotConnection)
	if err != nil || !ok {
		return Connection{}, false, err
	}
	var conn Connection
	if err := json.Unmarshal(data, &conn); err != nil {
		return Connection{}, false, fmt.Errorf("decode connection: %w", err)
	}
	return conn, true, nil
}

// ClearConnection forgets the remembered connection.
func (c *Cache) ClearConnection() error {
	return c.clear(slotConnection)
}
