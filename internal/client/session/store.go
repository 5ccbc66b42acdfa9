// Package session keeps the CLI's session token on disk between runs.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tuktask/internal/filex"
)

const fileName = "session"

var ErrNoSession = errors.New("not logged in")

// Store reads and writes <dir>/session.
type Store struct {
	path string
}

// NewStore creates dirName under the working directory if needed.
func NewStore(dirName string) (*Store, error) {
	dir, err := filex.EnsureSubdDir(dirName)
	if err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

func (s *Store) Save(token string) error {
	if err := filex.WriteFileAtomic(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns ErrNoSession when no token is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
