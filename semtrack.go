// Package semtrack opens a configured storage backend and returns the
// document store the rest of the program works against.
package semtrack

import (
	"fmt"

	"semtrack/internal/docstore"
	"semtrack/internal/kvstore"
)

// Supported storage backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Open builds a document store over the named backend. target is the
// data directory for the file backend (empty means the default config
// dir) and the connection URL for postgres; memory ignores it.
func Open(backend, target string) (*docstore.Store, error) {
	kv, err := openBackend(backend, target)
	if err != nil {
		return nil, err
	}
	return docstore.New(kv), nil
}

func openBackend(backend, target string) (kvstore.Store, error) {
	switch backend {
	case "", BackendFile:
		dir := target
		if dir == "" {
			var err error
			dir, err = kvstore.DefaultDataDir()
			if err != nil {
				return nil, fmt.Errorf("failed to locate data directory: %w", err)
			}
		}
		return kvstore.NewFile(dir)
	case BackendPostgres:
		if target == "" {
			return nil, fmt.Errorf("postgres backend requires a connection URL")
		}
		return kvstore.OpenSQL(target)
	case BackendMemory:
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
