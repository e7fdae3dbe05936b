// Package kvstore provides the generic string-keyed byte store the
// document store persists into. Backends share a two-method contract:
// a Get that distinguishes "absent" from "failed", and a wholesale Set.
package kvstore

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNotFound = errors.New("key not found")
)

// Store is a persistent string-keyed byte store. Get returns
// ErrNotFound when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
