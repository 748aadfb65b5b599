// Package session holds the client-side session state: persistent storage of
// the issued bearer token and a display-oriented view of its claims. Nothing
// in this package makes access decisions; the server-side verifier is the
// only authority.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenKey is the single well-known key under which the token is persisted.
// Login overwrites it, logout removes it.
const TokenKey = "authToken"

// Store persists the session token between runs.
type Store interface {
	Save(token string) error
	Load() (string, error) // returns "" when no token is stored
	Clear() error
}

// FileStore persists the token as a file named after TokenKey inside a
// directory, typically the user's config dir.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, TokenKey)
}

// Save writes the token, creating the directory if needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

// Load reads the stored token. A missing file is not an error; it means no
// session.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the stored token. Removing an absent token is a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store, used in tests and short-lived tools.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the token in memory.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Load returns the stored token, or "" when none is stored.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Clear removes the stored token.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
