package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrCorrupt  = errors.New("store: corrupt value")
)

// Keys under which each collection is stored as a single serialized value.
const (
	KeyRoles = "roles"
	KeyUsers = "users"
)

// Store is the durable string-keyed medium the directory persists into.
// Concrete drivers (sqlite, redis, memory) implement this. Values are opaque
// bytes; writers always overwrite the whole value and the last write wins.
type Store interface {
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value under key.
	Put(ctx context.Context, key string, value []byte) error

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing medium is still reachable.
	Ping(ctx context.Context) error
}
