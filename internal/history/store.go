/*
Copyright © 2025 changheonshin
*/

// Package history persists executed organize operations in a sqlite
// database under the user's config directory, so past runs can be
// inspected and reversed after the process exits.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/devlikebear/parafile/internal/organizer"
)

// Entry is one persisted move operation.
type Entry struct {
	ID           int64     `db:"id"`
	RunID        string    `db:"run_id"`
	OriginalPath string    `db:"original_path"`
	FinalPath    string    `db:"final_path"`
	CategoryPath string    `db:"category_path"`
	CreatedAt    time.Time `db:"created_at"`
}

// StoreInterface defines the interface for the operation log.
type StoreInterface interface {
	InitDB() error
	Record(op organizer.Operation) error
	List(limit int) ([]Entry, error)
	LatestRun() ([]Entry, error)
	DeleteRun(runID string) error
	Close() error
}

// Store implements StoreInterface using sqlx. Every Store instance
// writes under a run ID assigned at construction, so one CLI invocation
// is one run.
type Store struct {
	db    *sqlx.DB
	runID string
}

// NewStore creates a Store. If dbConn is nil, InitDB connects to the
// default database under ~/.parafile.
func NewStore(dbConn *sqlx.DB) *Store {
	return &Store{
		db:    dbConn,
		runID: time.Now().Format("20060102-150405.000000000"),
	}
}

// InitDB opens the database connection and creates the operations table.
func (s *Store) InitDB() error {
	if s.db == nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		dbDir := filepath.Join(home, ".parafile")
		if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create db directory: %w", err)
		}

		dbConn, err := sqlx.Connect("sqlite3", filepath.Join(dbDir, "parafile.db"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = dbConn
	}

	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		original_path TEXT NOT NULL,
		final_path TEXT NOT NULL,
		category_path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_operations_run_id ON operations(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Record appends one executed operation under the current run.
func (s *Store) Record(op organizer.Operation) error {
	query := `
	INSERT INTO operations (run_id, original_path, final_path, category_path, created_at)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err := s.db.Exec(query, s.runID, op.OriginalPath, op.FinalPath, op.CategoryPath, op.Timestamp)
	return err
}

// List returns the most recent entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	query := "SELECT * FROM operations ORDER BY id DESC LIMIT ?"
	if err := s.db.Select(&entries, query, limit); err != nil {
		return nil, err
	}
	return entries, nil
}

// LatestRun returns every entry of the most recent run, in reverse
// execution order so callers can undo back to front.
func (s *Store) LatestRun() ([]Entry, error) {
	var runID string
	err := s.db.Get(&runID, "SELECT run_id FROM operations ORDER BY id DESC LIMIT 1")
	if err != nil {
		return nil, err
	}

	var entries []Entry
	query := "SELECT * FROM operations WHERE run_id = ? ORDER BY id DESC"
	if err := s.db.Select(&entries, query, runID); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteRun removes every entry of a run, typically after it was undone.
func (s *Store) DeleteRun(runID string) error {
	_, err := s.db.Exec("DELETE FROM operations WHERE run_id = ?", runID)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
