package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the HttpOnly cookie that carries the session
// token between requests.
const SessionCookie = "session"

// sessionTTL is how long a session stays valid after login.
const sessionTTL = 24 * time.Hour

// SessionManager is the contract between the HTTP layer and whatever backs
// the sessions. Create is called on login, Validate on every authenticated
// request, Destroy on logout.
//
// Two implementations exist: TokenSessions (signed, stateless) and
// MemorySessions (server-side map). Swapping one for the other is a one-line
// change in the composition root — handlers and middleware only see this
// interface.
type SessionManager interface {
	// Create establishes a session for the user and returns the opaque
	// token handed to the client.
	Create(userID string) (token string, err error)
	// Validate checks a token and returns the user id it identifies.
	// Expired, tampered, or unknown tokens return an error.
	Validate(token string) (userID string, err error)
	// Destroy invalidates a session. Destroying a token that was never
	// issued (or was already destroyed) is not an error — logout is
	// idempotent.
	Destroy(token string) error
}

// TokenSessions implements SessionManager with HMAC-signed JWTs.
//
// The session is entirely inside the signed token: no server-side state, no
// lookup on Validate. The trade-off is that Destroy can't revoke an issued
// token early — logout relies on the cookie being cleared, and the token
// ages out at sessionTTL. MemorySessions exists for deployments where early
// revocation matters.
type TokenSessions struct {
	secret []byte
}

var _ SessionManager = (*TokenSessions)(nil)

// NewTokenSessions creates a TokenSessions signing with the given secret.
// The secret should be at least 32 bytes of random data in production, e.g.
// SESSION_SECRET=$(openssl rand -hex 32).
func NewTokenSessions(secret string) (*TokenSessions, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &TokenSessions{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The "sub" (Subject) registered claim carries
// the internal user id.
type claims struct {
	jwt.RegisteredClaims
}

// Create signs a session token bound to the given user id.
func (s *TokenSessions) Create(userID string) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			Issuer:    "reciplanner",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token and returns the user id.
//
// jwt.WithValidMethods pins the algorithm to HS256 so a token claiming
// alg=none (or an asymmetric algorithm) is rejected outright, and
// WithIssuer rejects tokens minted by some other application sharing the
// same secret.
func (s *TokenSessions) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("reciplanner"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session expired")
		}
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid session claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: session token has no subject")
	}

	return c.Subject, nil
}

// Destroy is a no-op for signed tokens — there is nothing server-side to
// delete. The HTTP layer clears the cookie; the token itself expires at
// sessionTTL.
func (s *TokenSessions) Destroy(string) error {
	return nil
}
