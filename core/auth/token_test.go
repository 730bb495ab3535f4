package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateToken("alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Username != "alice" || claims.Role != "admin" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if claims.Subject != "alice" {
		t.Errorf("Expected subject alice, got %q", claims.Subject)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute, time.Hour)

	token, err := issuer.GenerateToken("alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := issuer.ParseToken(token); err == nil {
		t.Error("Expected an expired token to be rejected")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, time.Hour)
	other := NewTokenIssuer("other-secret", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateToken("alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := other.ParseToken(token); err == nil {
		t.Error("Expected a token signed with another secret to be rejected")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateRefreshToken("alice")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := issuer.ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("ParseRefreshToken failed: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateToken("alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := issuer.ParseRefreshToken(token); err == nil {
		t.Error("Expected an access token to fail refresh parsing")
	}
}
