// Package session persists the API token between runs.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNoToken is returned by Load when no usable token is stored.
var ErrNoToken = errors.New("not logged in")

// Store keeps one token in a file readable only by the owner.
type Store struct {
	path string
	now  func() time.Time

	mu    sync.Mutex
	cache string
}

// NewStore returns a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes token to disk with mode 0600.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("save token: empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.mu.Lock()
	s.cache = token
	s.mu.Unlock()
	return nil
}

// Load returns the stored token. Missing, empty and expired tokens yield
// ErrNoToken.
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	token := s.cache
	s.mu.Unlock()

	if token == "" {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		if err != nil {
			return "", fmt.Errorf("load token: %w", err)
		}
		token = strings.TrimSpace(string(data))
		if token == "" {
			return "", ErrNoToken
		}
	}

	if exp, ok := Expiry(token); ok && !s.now().Before(exp) {
		return "", ErrNoToken
	}

	s.mu.Lock()
	s.cache = token
	s.mu.Unlock()
	return token, nil
}

// Token implements api.TokenSource. A missing token is not an error: the
// request goes out unauthenticated and the backend answers 401.
func (s *Store) Token() (string, error) {
	token, err := s.Load()
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	return token, err
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.cache = ""
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Expiry reads the exp claim of a JWT without verifying it. ok is false
// when the token is not a JWT or has no exp claim.
func Expiry(token string) (exp time.Time, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp *json.Number `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == nil {
		return time.Time{}, false
	}
	secs, err := claims.Exp.Float64()
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0), true
}
