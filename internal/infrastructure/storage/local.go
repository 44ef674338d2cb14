package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage writes uploads to a directory on disk. The directory is
// served statically at /public.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save stores the file as <uuid>_<originalName> inside the upload dir.
func (s *LocalStorage) Save(ctx context.Context, originalName string, data []byte, contentType string) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(originalName))
	location := filepath.Join(s.dir, name)

	if err := os.WriteFile(location, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", location, err)
	}
	return location, nil
}

func (s *LocalStorage) Remove(ctx context.Context, location string) error {
	// Refuse anything outside the upload dir.
	cleaned := filepath.Clean(location)
	if !strings.HasPrefix(cleaned, filepath.Clean(s.dir)+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s: outside upload dir", location)
	}
	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", cleaned, err)
	}
	return nil
}
