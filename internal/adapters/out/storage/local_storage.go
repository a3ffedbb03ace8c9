// Package storage keeps uploaded prescription files on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"epharmacy/internal/core/ports"
	"epharmacy/internal/pkg/errs"

	"github.com/google/uuid"
)

var _ ports.PrescriptionStorage = (*LocalStorage)(nil)

// LocalStorage writes files below a base directory. Returned storage paths are
// relative to that directory and use forward slashes.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errs.NewValueIsRequiredError("basePath")
	}
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Upload stores content as <folder>/<random uuid>_<base name of fileName>.
func (s *LocalStorage) Upload(ctx context.Context, content []byte, fileName string, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return "", errs.NewValueIsInvalidError("fileName")
	}

	folder = path.Clean("/" + filepath.ToSlash(folder))[1:]
	dir := filepath.Join(s.basePath, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create folder %q: %w", folder, err)
	}

	stored := uuid.NewString() + "_" + name
	if err := os.WriteFile(filepath.Join(dir, stored), content, 0o640); err != nil {
		return "", fmt.Errorf("write %q: %w", stored, err)
	}

	return path.Join(folder, stored), nil
}
