package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("Validation Error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUpstream           = errors.New("upstream failure")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation, e.g. registering a username that
// is already taken.
func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, id),
	}
}

// InvalidCredentials covers both "no such username" and "wrong password".
// The two cases are deliberately indistinguishable to callers so login
// responses don't reveal which usernames exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid username or password",
	}
}

// Unauthenticated signals a missing or invalid session on a protected route.
// HTTP handlers map this to a redirect to the login page.
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "authentication required",
	}
}

// Upstream wraps a transport error or non-2xx response from the external
// recipe API. The underlying cause stays on the chain for logging; the
// Message is safe to show to users.
func Upstream(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %v", ErrUpstream, op, cause),
		Message: "There was an error processing your request. Please try again.",
	}
}
