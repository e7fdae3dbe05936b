package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"semtrack/internal/logger"
)

// File stores each key as one JSON file inside a data directory.
// This is the default backend: a single user, a single device, a
// handful of small documents.
type File struct {
	dir string
}

// DefaultDataDir returns ~/.config/semtrack.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "semtrack"), nil
}

// NewFile creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := f.path(key)
	logger.KV().Debug("writing %d bytes to %s", len(value), path)
	return os.WriteFile(path, value, 0600)
}

// path maps a store key to a file name. Keys are conventionally
// prefixed with '@'; anything outside [A-Za-z0-9_-] is flattened so
// the name stays portable.
func (f *File) path(key string) string {
	name := strings.TrimPrefix(key, "@")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
	return filepath.Join(f.dir, name+".json")
}
