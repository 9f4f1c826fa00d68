package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"mims-console/internal/domain/entity"
)

// Store is the durable client-side state: the restored identity, the
// preferences (theme + last business category), and idempotency keys.
// It is a small sqlite file, the console-side stand-in for the browser's
// key-value storage; everything authoritative lives in the backend.
type Store struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS identity (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	email TEXT NOT NULL,
	display_name TEXT NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS preferences (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	theme TEXT NOT NULL DEFAULT 'light',
	business_category TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS idempotency_keys (
	key TEXT NOT NULL,
	user_email TEXT NOT NULL,
	endpoint TEXT NOT NULL,
	response_code INTEGER NOT NULL,
	response_body TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL,
	PRIMARY KEY (key, user_email)
);
`

// Open opens (and if needed initializes) the store at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: init schema: %w", err)
	}
	// Expired idempotency keys are dead weight; clear them on startup.
	_, _ = db.Exec(`DELETE FROM idempotency_keys WHERE expires_at < ?`, time.Now())
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveIdentity persists the authenticated identity for startup restore.
func (s *Store) SaveIdentity(session entity.Session) error {
	const q = `
		INSERT INTO identity (id, email, display_name, saved_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			saved_at = excluded.saved_at
	`
	_, err := s.db.Exec(q, session.Email, session.DisplayName, time.Now())
	if err != nil {
		return fmt.Errorf("localstore: save identity: %w", err)
	}
	return nil
}

// LoadIdentity returns the stored identity, or nil when none is stored.
func (s *Store) LoadIdentity() (*entity.Session, error) {
	var row struct {
		Email       string `db:"email"`
		DisplayName string `db:"display_name"`
	}
	err := s.db.Get(&row, `SELECT email, display_name FROM identity WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localstore: load identity: %w", err)
	}
	return &entity.Session{Email: row.Email, DisplayName: row.DisplayName}, nil
}

// ClearIdentity removes the stored identity (logout).
func (s *Store) ClearIdentity() error {
	_, err := s.db.Exec(`DELETE FROM identity WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("localstore: clear identity: %w", err)
	}
	return nil
}

// SavePreferences persists theme and last-known business category.
func (s *Store) SavePreferences(p entity.Preferences) error {
	const q = `
		INSERT INTO preferences (id, theme, business_category) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			business_category = excluded.business_category
	`
	_, err := s.db.Exec(q, p.Theme, p.BusinessCategory)
	if err != nil {
		return fmt.Errorf("localstore: save preferences: %w", err)
	}
	return nil
}

// LoadPreferences returns the stored preferences, defaulting when unset.
func (s *Store) LoadPreferences() (entity.Preferences, error) {
	var p entity.Preferences
	err := s.db.Get(&p, `SELECT theme, business_category FROM preferences WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Preferences{Theme: "light"}, nil
	}
	if err != nil {
		return entity.Preferences{}, fmt.Errorf("localstore: load preferences: %w", err)
	}
	return p, nil
}
