// Package sqlite persists artifacts and sync state in a single SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ruleweaver/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "2"

// DatabaseFile is the file name used under the data directory
const DatabaseFile = "ruleweaver.db"

// Store implements the artifact, sync state and import history ports
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ ports.ArtifactStore      = (*Store)(nil)
	_ ports.SyncStateStore     = (*Store)(nil)
	_ ports.ImportHistoryStore = (*Store)(nil)
	_ ports.ArtifactCopier     = (*Store)(nil)
)

// Open opens or creates the database at path. An empty path uses DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps pragmas and :memory: databases consistent
	db.SetMaxOpenConns(1)

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS artifacts (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			scope TEXT NOT NULL,
			target_paths TEXT NOT NULL DEFAULT '[]',
			enabled_adapters TEXT NOT NULL DEFAULT '[]',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS written_records (
			path TEXT PRIMARY KEY,
			hash TEXT NOT NULL,
			adapters TEXT NOT NULL DEFAULT '[]',
			operation TEXT NOT NULL,
			written_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS suppressions (
			path TEXT PRIMARY KEY,
			remote_hash TEXT NOT NULL,
			expected_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sync_history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			at INTEGER NOT NULL,
			files_written INTEGER NOT NULL,
			conflicts INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			success INTEGER NOT NULL,
			triggered_by TEXT NOT NULL,
			duration_ns INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS import_history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			at INTEGER NOT NULL,
			source_type TEXT NOT NULL,
			source_label TEXT NOT NULL,
			conflict_mode TEXT NOT NULL,
			scanned INTEGER NOT NULL,
			imported INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			conflicts INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			scan_errors INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_artifacts_type ON artifacts(type);
		CREATE INDEX IF NOT EXISTS idx_artifacts_name ON artifacts(type, name COLLATE NOCASE);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DefaultPath returns $XDG_DATA_HOME/ruleweaver/ruleweaver.db
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ruleweaver", DatabaseFile)
}

// withTx runs fn inside a transaction, rolling back on error
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
