// Package sqlite stores time entries and active timers in an embedded
// SQLite database for single-node deployments.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS time_entries (
		id             TEXT PRIMARY KEY,
		topic_id       TEXT NOT NULL,
		user_id        TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		started_at     TEXT,
		amount_seconds INTEGER NOT NULL DEFAULT 0,
		revision       INTEGER NOT NULL DEFAULT 1,
		edited_by      TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS active_timers (
		user_id     TEXT PRIMARY KEY,
		entry_id    TEXT NOT NULL,
		topic_id    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		started_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_created ON time_entries(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_user_created ON time_entries(user_id, created_at DESC)`,
}

func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
