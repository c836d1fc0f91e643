package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"focusflow/internal/core"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DecodeSession decodes a bearer token into a Session. The client is not
// the party that verifies signatures, so the parse is unverified; only the
// structure and the expiry are checked locally. A token that fails to decode
// or whose expiry has passed yields an error, never a partial session.
func DecodeSession(token string, now time.Time) (*core.Session, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if !claims.ExpiresAt.After(now) {
		return nil, ErrTokenExpired
	}
	return &core.Session{
		ID:        claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}
