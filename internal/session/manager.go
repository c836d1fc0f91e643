package session

import (
	"context"
	"sync"
	"time"

	"focusflow/internal/core"
	"focusflow/internal/log"
)

// Refresher exchanges a refresh token for a new token pair. The API client
// provides the real implementation.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
}

// Manager owns the session state machine: Unknown until Restore runs, then
// Authenticated or Anonymous. There is no global header mutation; the API
// client asks the manager for the authorization header per request.
type Manager struct {
	mu        sync.RWMutex
	tokens    TokenStore
	refresher Refresher
	logger    *log.Logger
	now       func() time.Time

	current     *core.Session
	accessToken string
}

func NewManager(tokens TokenStore, refresher Refresher, logger *log.Logger) *Manager {
	return &Manager{
		tokens:    tokens,
		refresher: refresher,
		logger:    logger.WithComponent(log.ComponentSession),
		now:       time.Now,
	}
}

// SetRefresher wires the token refresher after construction. The API client
// needs the manager for auth headers and the manager needs the client for
// refresh, so one side attaches late. Call before Restore.
func (m *Manager) SetRefresher(r Refresher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresher = r
}

// Restore rebuilds the session from stored tokens at startup. An unexpired
// access token becomes the session directly; otherwise a stored refresh
// token is exchanged for a fresh pair; otherwise the session is cleared.
// Every failure collapses to Anonymous, never an error.
func (m *Manager) Restore(ctx context.Context) *core.Session {
	m.mu.RLock()
	refresher := m.refresher
	m.mu.RUnlock()

	access, refresh, err := m.tokens.Load()
	if err != nil {
		m.logger.Warn("token load failed, starting anonymous", "error", err)
		m.clear()
		return nil
	}

	if access != "" {
		if s, err := DecodeSession(access, m.now()); err == nil {
			m.set(s, access)
			m.logger.Info("session restored from stored token", "user_id", s.ID)
			return s
		}
	}

	if refresh != "" && refresher != nil {
		newAccess, newRefresh, err := refresher.Refresh(ctx, refresh)
		if err == nil {
			if s, loginErr := m.Login(newAccess, newRefresh); loginErr == nil {
				m.logger.Info("session restored via token refresh", "user_id", s.ID)
				return s
			}
		} else {
			m.logger.Warn("token refresh failed", "error", err)
		}
	}

	m.clear()
	return nil
}

// Login persists both tokens and decodes the access token into the current
// session. An undecodable access token fails the login and clears state.
func (m *Manager) Login(accessToken, refreshToken string) (*core.Session, error) {
	s, err := DecodeSession(accessToken, m.now())
	if err != nil {
		m.clear()
		return nil, err
	}
	if err := m.tokens.Save(accessToken, refreshToken); err != nil {
		m.clear()
		return nil, err
	}
	m.set(s, accessToken)
	return s, nil
}

// Logout erases the persisted tokens and the in-memory session.
func (m *Manager) Logout() error {
	err := m.tokens.Clear()
	m.clearSession()
	return err
}

// Current returns the session, or nil when anonymous.
func (m *Manager) Current() *core.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAdmin reports whether the current session carries the admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.IsAdmin()
}

// AuthHeader returns the Authorization header value for outgoing requests.
// An expired or absent session yields no header.
func (m *Manager) AuthHeader() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.Expired(m.now()) {
		return "", false
	}
	return "Bearer " + m.accessToken, true
}

func (m *Manager) set(s *core.Session, accessToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	m.accessToken = accessToken
}

func (m *Manager) clearSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.accessToken = ""
}

func (m *Manager) clear() {
	_ = m.tokens.Clear()
	m.clearSession()
}
