// Package memory provides an in-memory KV store.
//
// It is the default engine for tests and for hosts that do not want
// remember-me state to survive a process restart.
package memory

import (
	"context"
	"sync/atomic"

	"github.com/yndnr/routeguard-go/internal/storage"
	"github.com/yndnr/routeguard-go/pkg/cmap"
)

// Store is a concurrent-safe in-memory KV store.
type Store struct {
	items  *cmap.Map[string, []byte]
	closed atomic.Bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		items: cmap.New[string, []byte](),
	}
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, storage.ErrClosed
	}
	value, ok := s.items.Get(key)
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	// Copy to prevent external mutation of the stored slice.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a key-value pair.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return storage.ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.items.Set(key, stored)
	return nil
}

// Delete removes a key.
func (s *Store) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return storage.ErrClosed
	}
	s.items.Delete(key)
	return nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return s.items.Len()
}

// Close marks the store closed. Further operations fail with ErrClosed.
func (s *Store) Close() error {
	s.closed.Store(true)
	s.items.Clear()
	return nil
}
