package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore maps object keys onto a directory tree. It backs development
// runs and tests where no cloud bucket is available.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, ErrDirRequired
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) NewReader(_ context.Context, key string) (io.ReadCloser, error) {
	fPath := filepath.Join(s.dir, filepath.FromSlash(key))
	f, err := os.Open(fPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotExist, fPath)
		}
		return nil, fmt.Errorf("storage: opening %s: %w", fPath, err)
	}
	return f, nil
}

func (s *LocalStore) Upload(_ context.Context, key string, body io.Reader) (string, error) {
	fPath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fPath), 0755); err != nil {
		return "", fmt.Errorf("storage: creating %s: %w", filepath.Dir(fPath), err)
	}

	f, err := os.Create(fPath)
	if err != nil {
		return "", fmt.Errorf("storage: creating %s: %w", fPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("storage: writing %s: %w", fPath, err)
	}
	return fPath, nil
}
