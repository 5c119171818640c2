package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/stratalab/fscap/internal/port"
)

// Store implements port.Store over SQLite
type Store struct {
	db *sql.DB
}

// Ensure Store implements port.Store
var _ port.Store = (*Store)(nil)

// Open opens a connection to the SQLite database
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks database connectivity
func (s *Store) Ping() error {
	return s.db.Ping()
}

// migrate creates or updates the database schema
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS filesystems (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device TEXT NOT NULL DEFAULT '',
			mountpoint TEXT NOT NULL,
			kind TEXT NOT NULL,
			mounted BOOLEAN NOT NULL DEFAULT FALSE,
			last_scan_at TIMESTAMP,
			last_error TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (device, mountpoint)
		)`,

		`CREATE TABLE IF NOT EXISTS capacity_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filesystem_id INTEGER NOT NULL,
			scan_id TEXT NOT NULL,
			capacity_bytes INTEGER NOT NULL,
			total_bytes INTEGER,
			used_bytes INTEGER,
			free_bytes INTEGER,
			taken_at TIMESTAMP NOT NULL,
			FOREIGN KEY (filesystem_id) REFERENCES filesystems(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_snapshots_fs_taken
			ON capacity_snapshots(filesystem_id, taken_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_taken
			ON capacity_snapshots(taken_at)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_scan
			ON capacity_snapshots(scan_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}
	return nil
}
