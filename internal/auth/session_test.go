package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestTokenSessions(t *testing.T) *TokenSessions {
	t.Helper()
	s, err := NewTokenSessions("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenSessions() error = %v", err)
	}
	return s
}

func TestNewTokenSessions_RejectsShortSecret(t *testing.T) {
	if _, err := NewTokenSessions("short"); err == nil {
		t.Error("NewTokenSessions() should reject secrets under 16 characters")
	}
}

func TestTokenSessions_CreateValidateRoundTrip(t *testing.T) {
	s := newTestTokenSessions(t)

	token, err := s.Create("user-123")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if token == "" {
		t.Fatal("Create() returned empty token")
	}

	userID, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Validate() userID = %q, want %q", userID, "user-123")
	}
}

func TestTokenSessions_RejectsTamperedToken(t *testing.T) {
	s := newTestTokenSessions(t)

	token, err := s.Create("user-123")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Flip a character inside the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := s.Validate(tampered); err == nil {
		t.Error("Validate() should reject a tampered token")
	}
}

func TestTokenSessions_RejectsWrongSecret(t *testing.T) {
	s := newTestTokenSessions(t)
	other, err := NewTokenSessions("a-completely-different-secret!!!")
	if err != nil {
		t.Fatalf("NewTokenSessions() error = %v", err)
	}

	token, err := s.Create("user-123")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Validate() should reject a token signed with a different secret")
	}
}

func TestTokenSessions_RejectsGarbage(t *testing.T) {
	s := newTestTokenSessions(t)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.Validate(tok); err == nil {
			t.Errorf("Validate(%q) should fail", tok)
		}
	}
}

func TestTokenSessions_DestroyIsIdempotent(t *testing.T) {
	s := newTestTokenSessions(t)

	token, err := s.Create("user-123")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Destroy never errors, even called twice or with an unknown token.
	if err := s.Destroy(token); err != nil {
		t.Errorf("Destroy() error = %v", err)
	}
	if err := s.Destroy(token); err != nil {
		t.Errorf("second Destroy() error = %v", err)
	}
	if err := s.Destroy("never-issued"); err != nil {
		t.Errorf("Destroy(unknown) error = %v", err)
	}
}

func TestMemorySessions_CreateValidateDestroy(t *testing.T) {
	s := NewMemorySessions()

	token, err := s.Create("user-456")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	userID, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if userID != "user-456" {
		t.Errorf("Validate() userID = %q, want %q", userID, "user-456")
	}

	if err := s.Destroy(token); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if _, err := s.Validate(token); err == nil {
		t.Error("Validate() should fail after Destroy — memory sessions revoke immediately")
	}

	// Idempotent destroy.
	if err := s.Destroy(token); err != nil {
		t.Errorf("second Destroy() error = %v", err)
	}
}

func TestMemorySessions_Expiry(t *testing.T) {
	s := NewMemorySessions()
	current := time.Now()
	s.now = func() time.Time { return current }

	token, err := s.Create("user-789")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	current = current.Add(sessionTTL + time.Minute)
	if _, err := s.Validate(token); err == nil {
		t.Error("Validate() should fail once the session has aged out")
	}
}

func TestMemorySessions_TokensAreUnique(t *testing.T) {
	s := NewMemorySessions()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.Create("user")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("Create() returned a duplicate token: %s", token)
		}
		seen[token] = true
	}
}
