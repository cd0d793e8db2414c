// Package file persists the session as one file per key under a base
// directory, the CLI counterpart of the browser's local storage. Files are
// written 0600; Set replaces the previous value atomically via rename.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labelforge/labelforge-go/internal/core/ports"
)

type Store struct {
	dir string
}

// New creates the base directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// DefaultDir returns ~/.labelforge (or the OS equivalent of the home dir).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".labelforge"), nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ports.ErrKeyNotFound
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(raw), nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	for _, key := range []string{ports.StoreKeyToken, ports.StoreKeyUser} {
		if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
