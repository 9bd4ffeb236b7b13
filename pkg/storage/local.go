package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "/uploads"

// Local writes files below Dir and serves them from BaseURL + PublicPrefix.
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// path maps key below Dir. Keys cannot escape it.
func (l *Local) path(key string) (string, string, error) {
	clean := filepath.Clean("/" + key)[1:]
	if clean == "" {
		return "", "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(l.Dir, filepath.FromSlash(clean)), clean, nil
}

func (l *Local) Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	path, clean, err := l.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return l.BaseURL + PublicPrefix + "/" + filepath.ToSlash(clean), nil
}

// Delete removes key. A missing file is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	path, _, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
