package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	manager, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := manager.Issue("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "user@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	manager, _ := NewTokenManager("test-secret", time.Nanosecond)

	token, err := manager.Issue("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := manager.Verify(token); err == nil {
		t.Fatal("expected verification to fail after expiry")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword(hashed, "correct horse battery staple") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hashed, "wrong password") {
		t.Fatal("expected mismatching password to fail")
	}
}
