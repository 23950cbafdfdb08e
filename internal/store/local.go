// Package store persists named state blobs in a SQLite "local storage" file.
// It stands in for the browser's localStorage: one row per blob name, the
// value is an opaque JSON document owned by the caller.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"daydream/internal/logging"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Driver names registered by the two SQLite drivers.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// LocalStorage is a SQLite-backed key/value blob store.
type LocalStorage struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	driver string
}

// Open initializes the SQLite database at the given path with the given
// driver ("sqlite" or "sqlite3"). ":memory:" opens a throwaway store.
func Open(driver, path string) (*LocalStorage, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.Open")
	defer timer.Stop()

	if driver == "" {
		driver = DriverModernc
	}
	if driver != DriverModernc && driver != DriverCgo {
		return nil, fmt.Errorf("unsupported sqlite driver: %q", driver)
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.StoreError("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		logging.StoreError("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
		}
	}

	s := &LocalStorage{db: db, dbPath: path, driver: driver}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.StoreDebug("Opened local storage %s (driver=%s)", path, driver)
	return s, nil
}

func (s *LocalStorage) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS local_storage (
		name TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create local_storage table: %w", err)
	}
	return nil
}

// Load returns the blob stored under name. ok is false when absent.
func (s *LocalStorage) Load(name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRow("SELECT value FROM local_storage WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return value, true, nil
}

// Save writes the blob under name, replacing any previous value.
func (s *LocalStorage) Save(name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO local_storage (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		name, value)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	logging.StoreDebug("Saved %s (%d bytes)", name, len(value))
	return nil
}

// Remove deletes the blob stored under name. Removing a missing name is not an error.
func (s *LocalStorage) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM local_storage WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// Keys lists every stored blob name in sorted order.
func (s *LocalStorage) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT name FROM local_storage")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, rows.Err()
}

// Clear deletes every blob.
func (s *LocalStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM local_storage"); err != nil {
		return fmt.Errorf("failed to clear local storage: %w", err)
	}
	return nil
}

// Path returns the database path.
func (s *LocalStorage) Path() string { return s.dbPath }

// Driver returns the SQL driver name in use.
func (s *LocalStorage) Driver() string { return s.driver }

// Close closes the database connection.
func (s *LocalStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
