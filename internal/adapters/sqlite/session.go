// Package sqlite stores the presenter session in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pdfsat/internal/domain"
	"pdfsat/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Session keys
const (
	keyLastFile      = "last_file"
	keyLastDirectory = "last_directory"
	keyLastNotes     = "last_notes"
	keyLastSlide     = "last_slide"
)

// SessionStore implements ports.SessionStore using SQLite
type SessionStore struct {
	db     *sql.DB
	dbPath string
}

// Ensure SessionStore implements ports.SessionStore
var _ ports.SessionStore = (*SessionStore)(nil)

// DefaultPath returns the session database path under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pdfsat", "session.db")
}

// Open opens or creates the session database at dbPath
func Open(dbPath string) (*SessionStore, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &SessionStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path
func (s *SessionStore) Path() string { return s.dbPath }

// Load returns the stored session. Missing keys leave their field zero.
func (s *SessionStore) Load(ctx context.Context) (domain.SessionState, error) {
	var state domain.SessionState

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return state, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return state, fmt.Errorf("failed to scan session: %w", err)
		}
		switch key {
		case keyLastFile:
			state.LastFile = value
		case keyLastDirectory:
			state.LastDirectory = value
		case keyLastNotes:
			state.LastNotes = value
		case keyLastSlide:
			// A corrupt value restores to the first slide
			if n, err := strconv.Atoi(value); err == nil {
				state.LastSlide = n
			}
		}
	}
	return state, rows.Err()
}

// Save replaces the stored session atomically
func (s *SessionStore) Save(ctx context.Context, state domain.SessionState) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	values := []struct{ key, value string }{
		{keyLastFile, state.LastFile},
		{keyLastDirectory, state.LastDirectory},
		{keyLastNotes, state.LastNotes},
		{keyLastSlide, strconv.Itoa(state.LastSlide)},
	}
	for _, v := range values {
		if _, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO session (key, value)
			VALUES (?, ?)
		`, v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	return tx.Commit()
}

// Clear removes the stored session
func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	return err
}

// Close closes the database connection
func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
