package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrSyncInFlight is returned when a sync push is already running against
// this store.
var ErrSyncInFlight = errors.New("sync already in flight")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the durable offline store for transactions, categories and
// categorization rules. Overlapping sync pushes against the same store
// would double-submit pending records, so pushes must hold the
// single-flight guard.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	syncing bool
}

// Open opens or creates the store at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// BeginSync acquires the single-flight sync guard.
func (s *Store) BeginSync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing {
		return ErrSyncInFlight
	}
	s.syncing = true
	return nil
}

// EndSync releases the sync guard.
func (s *Store) EndSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false
}

const lastSyncKey = "last_sync_time"

// LastSyncTime returns when the last successful push completed, or nil if
// no push has completed yet.
func (s *Store) LastSyncTime() (*time.Time, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM sync_meta WHERE key = ?`, lastSyncKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last sync time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parsing last sync time %q: %w", value, err)
	}
	return &t, nil
}

// SetLastSyncTime records when a push completed.
func (s *Store) SetLastSyncTime(t time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, lastSyncKey, t.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("setting last sync time: %w", err)
	}
	return nil
}
