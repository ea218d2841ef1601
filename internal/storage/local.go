package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store on a local directory. Useful for development
// and tests; PublicURL returns file:// URLs.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs}, nil
}

// Upload writes data to a file under the store directory.
func (s *LocalStore) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	if name == "" {
		return ErrEmptyName
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PublicURL returns a file:// URL for name.
func (s *LocalStore) PublicURL(name string) string {
	return "file://" + filepath.Join(s.dir, filepath.Base(name))
}
