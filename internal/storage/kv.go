// Package storage provides the persisted key-value store backing
// remember-me continuity.
//
// The store plays the role browser-local storage plays for a web client:
// a small, tab-scoped, single-writer namespace holding the remember-me
// session handle, the sealed token, and the transient pending-redirect
// target. Two engines are provided: an in-memory engine for tests and
// ephemeral use, and a Badger-backed engine for durable state.
package storage

import (
	"context"
	"errors"
)

// Common errors.
var (
	// ErrKeyNotFound indicates the key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store closed")
)

// KV is the persisted state store consumed by the session layer.
//
// Implementation requirements:
//   - Thread-safe: concurrent reads/writes must be safe.
//   - Small values: entries are handles and sealed payloads, not bulk data.
//   - Get on a missing key returns ErrKeyNotFound, never an empty value.
type KV interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a key-value pair, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the engine's resources.
	Close() error
}
