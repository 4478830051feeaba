// Package history persists past queries and their answers in SQLite.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no entry exists for the requested id.
var ErrNotFound = errors.New("history entry not found")

// PlaceholderResponse marks an entry whose query is still running. The
// dispatcher replaces it with the real answer (or an error message) when the
// invocation finishes.
const PlaceholderResponse = "Processing..."

// Entry is one stored query/response pair.
type Entry struct {
	ID            int64     `json:"id"`
	Query         string    `json:"query"`
	Response      string    `json:"response"`
	SearchOptions string    `json:"search_options"`
	TaskID        string    `json:"task_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store manages the query history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the history store at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, dbPath: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// initSchema creates the database schema.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS query_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		response TEXT NOT NULL DEFAULT '',
		search_options TEXT NOT NULL DEFAULT '',
		task_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_query_history_created ON query_history(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Insert records a new query and returns its id. The response starts as the
// placeholder; call UpdateResponse when the answer arrives.
func (s *Store) Insert(query, searchOptions string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO query_history (query, response, search_options) VALUES (?, ?, ?)`,
		query, PlaceholderResponse, searchOptions,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}
	return res.LastInsertId()
}

// UpdateResponse stores the finished answer for an entry along with the task
// identifier that allows resuming the conversation.
func (s *Store) UpdateResponse(id int64, response, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`UPDATE query_history SET response = ?, task_id = ? WHERE id = ?`,
		response, taskID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns the entry with the given id.
func (s *Store) Get(id int64) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Entry
	err := s.db.QueryRow(
		`SELECT id, query, response, search_options, task_id, created_at
		 FROM query_history WHERE id = ?`, id,
	).Scan(&e.ID, &e.Query, &e.Response, &e.SearchOptions, &e.TaskID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	return &e, nil
}

// List returns the most recent entries, newest first. limit <= 0 returns all.
func (s *Store) List(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, query, response, search_options, task_id, created_at
	          FROM query_history ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Query, &e.Response, &e.SearchOptions, &e.TaskID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry with the given id.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM query_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
