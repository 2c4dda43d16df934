package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage implements Storage on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local filesystem storage rooted at basePath,
// creating the directory if necessary.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes the content under name. Multiple PDFs may match the same
// record and thus collide on the derived filename; collisions get a short
// unique suffix instead of overwriting.
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(name)
	target := filepath.Join(s.basePath, name)
	if _, err := os.Stat(target); err == nil {
		name = uniqueName(name)
		target = filepath.Join(s.basePath, name)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return name, nil
}

// BasePath returns the directory renamed copies are written to.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

func uniqueName(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", stem, uuid.NewString()[:8], ext)
}
