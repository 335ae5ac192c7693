package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads to a directory on local disk. Keys map to
// relative paths under the base directory and are served from /uploads.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the upload directory if missing.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// BaseDir returns the directory uploads are written to.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// Put writes the data under key and returns the public URL path.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(key, "..") {
		return "", fmt.Errorf("invalid object key: %s", key)
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}

	return "/uploads/" + key, nil
}

// Delete removes the stored file. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
