package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, sub, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"name":  "Test User",
		"email": "test@example.com",
		"role":  role,
		"exp":   exp.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestDecodeSession(t *testing.T) {
	now := time.Now()
	tok := signToken(t, "u1", "user", now.Add(time.Hour))

	s, err := DecodeSession(tok, now)
	if err != nil {
		t.Fatalf("DecodeSession: %v", err)
	}
	if s.ID != "u1" || s.Role != "user" || s.Email != "test@example.com" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.Expired(now) {
		t.Fatalf("fresh session must not be expired")
	}
}

func TestDecodeSessionExpired(t *testing.T) {
	now := time.Now()
	// Expiry one hour in the past: must yield no session even though the
	// token structure is valid.
	tok := signToken(t, "u1", "user", now.Add(-time.Hour))

	_, err := DecodeSession(tok, now)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestDecodeSessionMalformed(t *testing.T) {
	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := DecodeSession(tok, time.Now()); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestDecodeSessionMissingExpiry(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	s, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := DecodeSession(s, time.Now()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing exp, got %v", err)
	}
}
