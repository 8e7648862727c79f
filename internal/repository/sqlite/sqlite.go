// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite rather than github.com/mattn/go-sqlite3: it's a
// pure Go translation of the SQLite sources, so no CGo and no C toolchain is
// needed for builds or cross-compilation. The driver registers itself with
// database/sql under the name "sqlite" via the blank import below.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// The lifecycle is owned by whoever calls New — close it on shutdown so the
// WAL is flushed and the file lock released.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/reciplanner.db" → file-based database (persistent)
//   - ":memory:"            → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection for the whole pool. SQLite serializes writes anyway,
	// the pragmas below are per-connection, and ":memory:" would otherwise
	// give each pooled connection its own empty database.
	conn.SetMaxOpenConns(1)

	// sql.Open doesn't actually connect; Ping forces the first connection so
	// a bad path or permission problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress — needed
	// for a web server where multiple requests hit the database at once.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. Every dietary restriction
	// and favorite row must reference an existing user, so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup against an existing database.
func (db *DB) migrate() error {
	// users: username is UNIQUE with the default BINARY collation, so
	// "Alice" and "alice" are two different accounts (case-sensitive
	// uniqueness). github_id is NULL for password-only accounts; the UNIQUE
	// constraint ignores NULLs, so any number of rows may leave it unset.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			github_id     INTEGER UNIQUE,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS dietary_restrictions (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			diet    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_dietary_restrictions_user_id
			ON dietary_restrictions(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating dietary_restrictions table: %w", err)
	}

	// favorites: the external recipe id is reused as part of the primary
	// key. The composite PK (recipe_id, user_id) is the uniqueness invariant
	// — at most one row per recipe per user.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS favorites (
			recipe_id  INTEGER NOT NULL,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			image_url  TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (recipe_id, user_id)
		);
		CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating favorites table: %w", err)
	}

	return nil
}
