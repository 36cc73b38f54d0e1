// Package redis stores each collection as a plain string value, letting
// several service instances share one directory.
package redis

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/go-redis/redis/v8"
)

type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps client. Every key is namespaced with prefix, e.g.
// "directory:roles".
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, opts *redis.Options, prefix string) (*Store, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewStore(client, prefix), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Put writes without expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// ApplyMigrations is a no-op; redis has no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
