package readstate

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DatabaseFile is the file name of the SQLite backend inside the state dir.
const DatabaseFile = "whatsnew.db"

// SQLiteStore keeps read state for any number of profiles in one SQLite
// database, one row per profile.
type SQLiteStore struct {
	db      *sql.DB
	profile string
	now     func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and prepares the
// schema. Parent directories are created if needed.
func NewSQLiteStore(path, profile string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating database directory: %w", ErrPersistenceUnavailable, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrPersistenceUnavailable, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %w", ErrPersistenceUnavailable, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=1000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: setting busy timeout: %w", ErrPersistenceUnavailable, err)
	}

	s := &SQLiteStore{db: db, profile: profile, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %w", ErrPersistenceUnavailable, err)
	}

	return s, nil
}

// createSchema creates the read_state table if it doesn't exist.
func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS read_state (
			profile TEXT PRIMARY KEY,
			last_seen_version TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	return err
}

// Load implements Store.
func (s *SQLiteStore) Load() (string, bool, error) {
	var version string
	err := s.db.QueryRow(
		"SELECT last_seen_version FROM read_state WHERE profile = ?", s.profile,
	).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("%w: querying read state: %w", ErrPersistenceUnavailable, err)
	}
	return version, version != "", nil
}

// Save implements Store.
func (s *SQLiteStore) Save(version string) error {
	_, err := s.db.Exec(`
		INSERT INTO read_state (profile, last_seen_version, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			last_seen_version = excluded.last_seen_version,
			updated_at = excluded.updated_at`,
		s.profile, version, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: saving read state: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
