package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/model"
	"github.com/ahndawn/ReciPlanner/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user row.
//
// The UNIQUE constraint on username is the source of truth for duplicate
// detection — we insert and translate the constraint violation rather than
// SELECT-then-INSERT, which would race with a concurrent registration.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, github_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.GitHubID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("username", user.Username)
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByID retrieves a user by their internal id.
// Returns apperror.ErrNotFound if no user exists with that id.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetByUsername retrieves a user by username. The lookup is case-sensitive:
// SQLite's default BINARY collation on the username column compares bytes.
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx, `WHERE username = ?`, username)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, github_id, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.GitHubID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", arg, err)
	}

	return &u, nil
}

// UpsertGitHub inserts or updates a user keyed by their GitHub id.
//
// First OAuth sign-in → INSERT (with a collision-suffixed username if the
// GitHub login is already taken by a local account). Subsequent sign-ins →
// keep the existing internal id and refresh updated_at.
func (db *DB) UpsertGitHub(ctx context.Context, user *model.User) error {
	if user.GitHubID == nil {
		return fmt.Errorf("sqlite: upserting user: github id must be set")
	}

	var existingID, existingUsername string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE github_id = ?`, *user.GitHubID,
	).Scan(&existingID, &existingUsername)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: looking up user by github_id %d: %w", *user.GitHubID, err)
	}

	if existingID != "" {
		// Returning sign-in: keep the internal id and the username the
		// account already has (it may have been suffixed on first insert).
		user.ID = existingID
		user.Username = existingUsername
		user.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET updated_at = ? WHERE id = ?`,
			user.UpdatedAt, user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}

	// New OAuth account. The GitHub login can clash with an existing local
	// username; retry with a numeric suffix until the insert sticks.
	base := user.Username
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			user.Username = fmt.Sprintf("%s-%d", base, attempt)
		}
		err = db.Create(ctx, user)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperror.ErrConflict) || attempt >= 10 {
			return err
		}
	}
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
// modernc.org/sqlite exposes the extended result code on its *sqlite.Error.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			serr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	// Fallback for drivers that only surface the message text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
