package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrMemberNotFound = errors.New("member not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	// The pragmas must live in the DSN so the driver applies them to every
	// pooled connection, not just the first one handed out.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// BeginRow opens the transaction scope for one imported row. Every write for
// that row (member, sub-records, associations, open-entity creation) goes
// through the returned transaction so a failure rolls the whole row back
// without touching its neighbours.
func (s *SQLiteStore) BeginRow() (*sql.Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin row transaction: %w", err)
	}
	return tx, nil
}

func (s *SQLiteStore) ensureSchema() error {
	// The uniqueness constraints here are the final guarantor behind the
	// importer's best-effort duplicate pre-check: legacy_id is globally
	// unique when present, and the composite identity key is unique.
	const schema = `
CREATE TABLE IF NOT EXISTS church_communities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS worship_places (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS societies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS sacrament_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS languages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS skills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS members (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	other_names TEXT NOT NULL DEFAULT '',
	maiden_name TEXT NOT NULL DEFAULT '',
	date_of_birth TEXT NOT NULL,
	gender TEXT NOT NULL,
	place_of_birth TEXT NOT NULL DEFAULT '',
	hometown TEXT NOT NULL DEFAULT '',
	region TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	marital_status TEXT NOT NULL DEFAULT 'unknown',
	mobile_number TEXT NOT NULL DEFAULT '',
	secondary_number TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	current_residence TEXT NOT NULL DEFAULT '',
	church_community_id INTEGER REFERENCES church_communities(id),
	place_of_worship_id INTEGER REFERENCES worship_places(id),
	legacy_id TEXT,
	generated_id TEXT NOT NULL DEFAULT '',
	source_file TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(first_name, last_name, other_names, date_of_birth, gender, place_of_birth)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_members_legacy_id
	ON members(legacy_id) WHERE legacy_id IS NOT NULL AND legacy_id != '';

CREATE TABLE IF NOT EXISTS occupations (
	member_id INTEGER NOT NULL UNIQUE REFERENCES members(id) ON DELETE CASCADE,
	role TEXT NOT NULL DEFAULT '',
	employer TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS family_info (
	member_id INTEGER NOT NULL UNIQUE REFERENCES members(id) ON DELETE CASCADE,
	spouse_name TEXT NOT NULL DEFAULT '',
	spouse_status TEXT NOT NULL DEFAULT 'unknown',
	father_name TEXT NOT NULL DEFAULT '',
	father_status TEXT NOT NULL DEFAULT 'unknown',
	mother_name TEXT NOT NULL DEFAULT '',
	mother_status TEXT NOT NULL DEFAULT 'unknown'
);
CREATE TABLE IF NOT EXISTS emergency_contacts (
	member_id INTEGER NOT NULL UNIQUE REFERENCES members(id) ON DELETE CASCADE,
	name TEXT NOT NULL DEFAULT '',
	number TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS medical_conditions (
	member_id INTEGER NOT NULL UNIQUE REFERENCES members(id) ON DELETE CASCADE,
	has_condition INTEGER NOT NULL DEFAULT 0,
	detail TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS member_skills (
	member_id INTEGER NOT NULL REFERENCES members(id) ON DELETE CASCADE,
	skill_id INTEGER NOT NULL REFERENCES skills(id),
	UNIQUE(member_id, skill_id)
);
CREATE TABLE IF NOT EXISTS member_languages (
	member_id INTEGER NOT NULL REFERENCES members(id) ON DELETE CASCADE,
	language_id INTEGER NOT NULL REFERENCES languages(id),
	UNIQUE(member_id, language_id)
);
CREATE TABLE IF NOT EXISTS member_societies (
	member_id INTEGER NOT NULL REFERENCES members(id) ON DELETE CASCADE,
	society_id INTEGER NOT NULL REFERENCES societies(id),
	UNIQUE(member_id, society_id)
);
CREATE TABLE IF NOT EXISTS member_sacraments (
	member_id INTEGER NOT NULL REFERENCES members(id) ON DELETE CASCADE,
	sacrament_type_id INTEGER NOT NULL REFERENCES sacrament_types(id),
	UNIQUE(member_id, sacrament_type_id)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// execer lets store methods run either directly on the pool or inside a
// row transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (s *SQLiteStore) on(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return s.db
}
