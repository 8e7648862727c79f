// Package auth provides the authentication building blocks: bcrypt password
// hashing, the session manager, the HTTP middleware that enforces sessions,
// and the optional GitHub OAuth provider.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms on a
// modern server — negligible for a login, expensive for a brute-force attack.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// The cost is a struct field (rather than a package constant baked into free
// functions) so tests can inject the bcrypt minimum of 4 and skip the ~250ms
// per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom (low)
// cost. Do NOT use in production — cost 4 is far too weak.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is self-contained (version, cost, and salt are all embedded),
// so it can be stored directly in the password_hash column. Two users with
// the same password get different hashes because the salt is random.
//
// Returns an error for plaintext longer than 72 bytes — bcrypt silently
// truncates beyond that, so we reject it instead.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil if they match. The comparison is constant-time internally, so
// response timing doesn't leak how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
