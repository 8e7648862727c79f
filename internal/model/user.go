// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// The primary credential is a username/password pair. PasswordHash holds the
// bcrypt hash of the password — the plaintext is never stored. Usernames are
// unique with case-sensitive comparison (enforced by the UNIQUE constraint in
// the users table, which uses SQLite's default BINARY collation).
//
// WHY GitHubID *int64?
// "Sign in with GitHub" is optional — accounts created with a password have no
// GitHub identity at all. A nil pointer models "no linked account", and the
// UNIQUE constraint on github_id still applies to the non-NULL rows.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"`
	PasswordHash string    `json:"-"         db:"password_hash"` // never serialized
	GitHubID     *int64    `json:"-"         db:"github_id"`     // set only for OAuth-linked accounts
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
