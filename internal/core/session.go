package core

import "time"

// AdminRole is the role string that grants administrative access.
const AdminRole = "admin"

// Session is the decoded identity derived from a bearer token. It is never
// constructed by hand: sessions come out of token decoding only. A non-nil
// Session implies the expiry had not elapsed at the time of last validation.
type Session struct {
	ID        string
	Name      string
	Email     string
	Role      string
	ExpiresAt int64 // unix seconds
}

// Expired reports whether the session expiry has passed at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.Unix()
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == AdminRole
}
