package auth

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-123", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	userID, err := VerifyToken(token, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %s", userID)
	}
}

func TestVerifyToken_NoExpiry(t *testing.T) {
	secret := []byte("test-secret")

	// ttl <= 0 issues a token without an expiry claim
	token, err := GenerateToken("user-456", secret, 0)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	userID, err := VerifyToken(token, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if userID != "user-456" {
		t.Errorf("expected user-456, got %s", userID)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-123", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := VerifyToken(token, secret); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := VerifyToken(token, []byte("wrong-secret")); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyToken_Tampered(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-123", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	// Flip a character in the signature segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %s", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := VerifyToken(tampered, secret); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	if _, err := VerifyToken("not.a.jwt", []byte("secret")); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if hash == "hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword("hunter2", hash) {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword("hunter3", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()

	if got := UserIDFromContext(ctx); got != "" {
		t.Errorf("expected empty user id, got %s", got)
	}

	ctx = ContextWithUserID(ctx, "user-789")
	if got := UserIDFromContext(ctx); got != "user-789" {
		t.Errorf("expected user-789, got %s", got)
	}
}
