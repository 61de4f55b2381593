// Package session keeps the bearer token and the signed-in user on disk.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"wbsplanner/internal/model"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type state struct {
	Token string      `yaml:"token"`
	User  *model.User `yaml:"user,omitempty"`
}

// Store is a file-backed session. It implements client.TokenStore.
type Store struct {
	path string
	mu   sync.RWMutex
	st   state
}

// Open loads the session at path. A missing file is an empty session.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &s.st); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Token
}

func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.User
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Save persists a fresh login.
func (s *Store) Save(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{Token: token, User: user}
	return s.write()
}

// Clear forgets the token and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) write() error {
	b, err := yaml.Marshal(s.st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(s.path, b, 0o600)
}
