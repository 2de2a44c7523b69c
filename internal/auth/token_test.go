package auth

import (
	"errors"
	"testing"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	tok, err := Issue(secret, 42, 7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	uid, err := Verify(secret, tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if uid != 42 {
		t.Fatalf("subject mismatch: got %d want 42", uid)
	}
}

func TestVerify_Missing(t *testing.T) {
	t.Parallel()

	_, err := Verify("k", "")
	if !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	// A negative TTL puts exp in the past.
	tok, err := Issue("k", 1, -1)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = Verify("k", tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue("right-secret", 7, 7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = Verify("wrong-secret", tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Verify("k", "not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
