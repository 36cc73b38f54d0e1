package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection is the repository for one entity type: it loads and saves the
// whole slice as a JSON array under a fixed key and mints ids for new
// records.
type Collection[R any] struct {
	store Store
	key   string
	newID func() string
}

func NewCollection[R any](st Store, key string, newID func() string) *Collection[R] {
	return &Collection[R]{store: st, key: key, newID: newID}
}

// Load returns the stored records. An absent key or a stored null yields an
// empty collection.
func (c *Collection[R]) Load(ctx context.Context) ([]R, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []R{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", c.key, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []R{}, nil
	}

	var records []R
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorrupt, c.key, err)
	}
	return records, nil
}

// Save serializes records and overwrites the stored value.
func (c *Collection[R]) Save(ctx context.Context, records []R) error {
	if records == nil {
		records = []R{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %q: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("put %q: %w", c.key, err)
	}
	return nil
}

func (c *Collection[R]) NextID() string { return c.newID() }
