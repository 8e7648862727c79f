package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
// Only this package can create a key of this type, so no other package can
// read or shadow the userID value placed in the request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces an active session on protected routes.
//
// It reads the session token from the HttpOnly cookie, validates it through
// the SessionManager, and stores the user id in the request context. A
// missing or invalid session redirects the browser to the login entry point
// (303) — this is a server-rendered app, so a redirect beats a bare 401.
func RequireAuth(sessions SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, sessions)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the user identity when a valid session is present
// but never blocks the request. Used on the home page, which renders a
// personalized view for logged-in users and a guest view otherwise.
func OptionalAuth(sessions SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, sessions); err == nil && userID != "" {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's id from the request
// context. Returns ("", false) for anonymous requests.
//
// Handlers always receive the user this way — there is no ambient
// "current user" global anywhere in the application.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID reads the session cookie and validates it.
func extractUserID(r *http.Request, sessions SessionManager) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		// http.ErrNoCookie — no session at all, an anonymous request.
		return "", err
	}

	return sessions.Validate(cookie.Value)
}
