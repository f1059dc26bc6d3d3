// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides user/request/menu/audit persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			rank TEXT NOT NULL DEFAULT '',
			designation TEXT NOT NULL DEFAULT '',
			service_number TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			clearance_level TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Active',
			service_years INTEGER NOT NULL DEFAULT 0,
			date_of_joining TEXT NOT NULL DEFAULT '',
			date_of_seniority TEXT NOT NULL DEFAULT '',
			date_of_retirement TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username
			ON users(username COLLATE NOCASE);

		CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			requester_name TEXT NOT NULL,
			requester_rank TEXT NOT NULL DEFAULT '',
			requester_unit TEXT NOT NULL DEFAULT '',
			requester_avatar TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			submitted_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			summary TEXT NOT NULL DEFAULT '',
			document_url TEXT NOT NULL DEFAULT '',
			next_approver TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_requests_type_status
			ON requests(type, status);

		CREATE TABLE IF NOT EXISTS menus (
			module_id TEXT PRIMARY KEY,
			tree TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS workflow_flags (
			workflow_id TEXT PRIMARY KEY,
			enabled INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			actor TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Success',
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_audit_created_at
			ON audit_log(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
