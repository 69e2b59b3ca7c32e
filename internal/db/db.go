package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/darek/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/darek.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.darek.
func Init(baseDir string) (*sql.DB, error) {
	// Create base directory with restricted permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	// Explicit chmod (best-effort, may not work on all platforms)
	_ = os.Chmod(baseDir, 0700)

	// Open database with pragmas in connection string (applies to all connections)
	dbPath := filepath.Join(baseDir, "darek.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	// Run migrations (this creates the file if it doesn't exist)
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Set file permissions after file exists (best-effort)
	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: one table per record kind, all keyed by user_id
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS reminder (
		  id         TEXT PRIMARY KEY,
		  user_id    TEXT NOT NULL,
		  task       TEXT NOT NULL,
		  remind_at  INTEGER NOT NULL,
		  completed  INTEGER NOT NULL DEFAULT 0,
		  created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reminder_user_remind_at
		ON reminder(user_id, remind_at);

		CREATE TABLE IF NOT EXISTS todo_item (
		  id         TEXT PRIMARY KEY,
		  user_id    TEXT NOT NULL,
		  task       TEXT NOT NULL,
		  priority   TEXT NOT NULL DEFAULT 'medium',
		  completed  INTEGER NOT NULL DEFAULT 0,
		  created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_todo_item_user_open
		ON todo_item(user_id, created_at)
		WHERE completed = 0;

		CREATE TABLE IF NOT EXISTS shopping_item (
		  id         TEXT PRIMARY KEY,
		  user_id    TEXT NOT NULL,
		  item_name  TEXT NOT NULL,
		  completed  INTEGER NOT NULL DEFAULT 0,
		  created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_shopping_item_user
		ON shopping_item(user_id, created_at);

		CREATE TABLE IF NOT EXISTS note (
		  id         TEXT PRIMARY KEY,
		  user_id    TEXT NOT NULL,
		  title      TEXT,
		  content    TEXT NOT NULL,
		  created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_note_user_created
		ON note(user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS timer (
		  id               TEXT PRIMARY KEY,
		  user_id          TEXT NOT NULL,
		  name             TEXT NOT NULL,
		  duration_seconds INTEGER NOT NULL,
		  start_time       INTEGER NOT NULL,
		  active           INTEGER NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_timer_user_start
		ON timer(user_id, start_time DESC);

		CREATE TABLE IF NOT EXISTS command_history (
		  id           TEXT PRIMARY KEY,
		  user_id      TEXT NOT NULL,
		  command_text TEXT NOT NULL,
		  timestamp    INTEGER NOT NULL,
		  success      INTEGER NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_command_history_user_ts
		ON command_history(user_id, timestamp DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
