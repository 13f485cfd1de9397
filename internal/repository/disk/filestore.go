// Package disk implements domain.BlobStore on the local filesystem.
// Payloads are filename-addressed under a fixed uploads root; a name
// collision overwrites the previous payload.
package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msomdec/msgdrop/internal/domain"
)

// FileStore stores blobs as plain files under a root directory.
type FileStore struct {
	root string
}

// New creates the uploads root if needed and returns a FileStore rooted
// there. The root is resolved to an absolute path so locators stay valid
// regardless of the working directory.
func New(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads root: %w", err)
	}
	return &FileStore{root: abs}, nil
}

func (s *FileStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.root, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		// Don't leave a partial payload behind.
		os.Remove(path)
		return "", fmt.Errorf("write blob: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("flush blob: %w", err)
	}

	return path, nil
}

func (s *FileStore) Get(ctx context.Context, locator string) ([]byte, error) {
	data, err := os.ReadFile(locator)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *FileStore) Remove(ctx context.Context, locator string) error {
	if err := os.Remove(locator); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// sanitizeFilename reduces an upload filename to its base name and rejects
// names that could escape the uploads root.
func sanitizeFilename(filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrInvalidInput, filename)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrInvalidInput, filename)
	}
	return name, nil
}
