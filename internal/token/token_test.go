package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := New([]byte("super-secret"), time.Hour)

	tok, err := svc.Issue("user_123", "a@example.com", "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user_123" {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, "user_123")
	}
	if claims.Email != "a@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := New([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue("u1", "u1@example.com", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := New([]byte("right-secret"), time.Hour).Issue("u2", "u2@example.com", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = New([]byte("wrong-secret"), time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := New([]byte("k"), time.Hour).Verify("not.a.token")
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
