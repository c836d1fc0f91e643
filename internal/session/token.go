// Package session holds the client identity lifecycle: durable token
// storage, bearer-token decoding and the restore/login/logout state machine.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
)

// TokenStore persists the raw access and refresh token strings. Absent
// tokens load as empty strings, not errors.
type TokenStore interface {
	Save(accessToken, refreshToken string) error
	Load() (accessToken, refreshToken string, err error)
	Clear() error
}

// FileTokenStore keeps the two tokens as files under a directory, one file
// per token.
type FileTokenStore struct {
	dir string
}

func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileTokenStore{dir: dir}, nil
}

func (s *FileTokenStore) Save(accessToken, refreshToken string) error {
	if err := os.WriteFile(filepath.Join(s.dir, accessTokenFile), []byte(accessToken), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, refreshTokenFile), []byte(refreshToken), 0o600)
}

func (s *FileTokenStore) Load() (string, string, error) {
	access, err := readToken(filepath.Join(s.dir, accessTokenFile))
	if err != nil {
		return "", "", err
	}
	refresh, err := readToken(filepath.Join(s.dir, refreshTokenFile))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *FileTokenStore) Clear() error {
	for _, name := range []string{accessTokenFile, refreshTokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func readToken(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MemoryTokenStore is an in-memory TokenStore for tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = accessToken, refreshToken
	return nil
}

func (s *MemoryTokenStore) Load() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}
