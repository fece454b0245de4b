// Package kvstore provides the string-keyed, string-valued storage the
// storefront mirrors its state into. Backends are synchronous and offer no
// transactions across keys and no expiry.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClosed         = errors.New("store is closed")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store defines the interface for key-value persistence
type Store interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Open creates a store for the named backend
// path is ignored by the memory backend
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}
