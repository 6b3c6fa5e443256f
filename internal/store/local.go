// Package store provides the durable local store backing the shopping cart.
// State is kept in a single-file SQLite database as string-keyed slots; the
// cart occupies the slot "swiftcart-cart" as a JSON document, read once at
// startup and rewritten after every cart mutation.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"swiftcart/internal/cart"
)

// CartSlot is the slot key holding the serialized cart.
const CartSlot = "swiftcart-cart"

// LocalStore is the SQLite-backed key-value slot store.
type LocalStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewLocalStore initializes the SQLite database at the given path.
func NewLocalStore(path string) (*LocalStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &LocalStore{db: db, dbPath: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initialize creates the required tables.
func (s *LocalStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *LocalStore) Close() error {
	return s.db.Close()
}

// SetSlot writes a raw value into a slot, replacing any previous value.
func (s *LocalStore) SetSlot(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// GetSlot reads a slot's raw value. A missing slot returns ok=false, not an error.
func (s *LocalStore) GetSlot(key string) (value string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, true, nil
}

// SaveCart serializes the cart items into the cart slot.
func (s *LocalStore) SaveCart(items []cart.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	return s.SetSlot(CartSlot, string(payload))
}

// LoadCart deserializes the cart slot. An absent slot or an undecodable
// payload yields an empty cart rather than an error; only database failures
// are reported.
func (s *LocalStore) LoadCart() ([]cart.Item, error) {
	payload, ok, err := s.GetSlot(CartSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		// Corrupt slot: start over with an empty cart.
		return nil, nil
	}
	return items, nil
}
