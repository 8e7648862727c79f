package auth

import (
	"strings"
	"testing"
)

// All tests use cost 4 (the bcrypt minimum) — the hashing logic is identical
// at every cost, and cost 12 would add ~250ms per hash to the test run.

func TestHashAndVerify(t *testing.T) {
	ps := NewPasswordServiceForTest(4)

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() must not return the plaintext")
	}

	if err := ps.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with the right password: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := NewPasswordServiceForTest(4)

	hash, err := ps.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "pw2"); err == nil {
		t.Error("Verify() should fail for the wrong password")
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	ps := NewPasswordServiceForTest(4)

	h1, err := ps.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Random salts: two hashes of the same password must differ.
	if h1 == h2 {
		t.Error("two hashes of the same password should not be equal")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := NewPasswordServiceForTest(4)

	// bcrypt truncates at 72 bytes; we refuse instead.
	long := strings.Repeat("x", 73)
	if _, err := ps.Hash(long); err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	ps := NewPasswordServiceForTest(4)

	if err := ps.Verify("not-a-bcrypt-hash", "anything"); err == nil {
		t.Error("Verify() should fail for a malformed stored hash")
	}
}
