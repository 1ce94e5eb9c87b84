package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS focus_sessions (
		id            TEXT PRIMARY KEY,
		preset_id     TEXT NOT NULL,
		started_at    TEXT NOT NULL,
		ends_at       TEXT NOT NULL,
		completed_at  TEXT,
		completed     INTEGER NOT NULL DEFAULT 0,
		total_minutes INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON focus_sessions(started_at);

	CREATE TABLE IF NOT EXISTS active_timer (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		session_id    TEXT NOT NULL,
		phase         TEXT NOT NULL,
		preset_id     TEXT NOT NULL,
		started_at    TEXT NOT NULL,
		ends_at       TEXT NOT NULL,
		total_minutes INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		target_time TEXT NOT NULL,
		kind        TEXT NOT NULL DEFAULT 'countdown',
		color       TEXT NOT NULL DEFAULT '#7AA2F7',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('auto_break',            '1'),
		('break_minutes',         '5'),
		('default_preset',        'standard'),
		('birth_date',            '1990-01-01'),
		('life_expectancy_years', '80'),
		('week_start',            'monday'),
		('sound',                 '1'),
		('vibration',             '1'),
		('time_format',           '24h');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/tempo/tempo.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "tempo", "tempo.db"), nil
}
