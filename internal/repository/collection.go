package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/strangecreator1911/icp-banking-system/internal/storage"
)

// ErrNotFound is returned (wrapped) by every lookup that misses.
var ErrNotFound = errors.New("not found")

// Collection is a typed view of one storage slot. Records are stored as JSON.
type Collection[T any] struct {
	backend storage.Backend
	slot    storage.Slot
}

func NewCollection[T any](backend storage.Backend, slot storage.Slot) *Collection[T] {
	return &Collection[T]{backend: backend, slot: slot}
}

func (c *Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	raw, ok, err := c.backend.Get(ctx, c.slot, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", c.slot, key, ErrNotFound)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", c.slot, key, err)
	}
	return &v, nil
}

func (c *Collection[T]) Insert(ctx context.Context, key string, value *T) error {
	entry, err := c.Entry(key, value)
	if err != nil {
		return err
	}
	return c.backend.Commit(ctx, entry)
}

// Values decodes every record in the slot, in key order.
func (c *Collection[T]) Values(ctx context.Context) ([]T, error) {
	raws, err := c.backend.Values(ctx, c.slot)
	if err != nil {
		return nil, err
	}
	values := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", c.slot, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// Entry encodes value for a multi-record storage.Backend.Commit.
func (c *Collection[T]) Entry(key string, value *T) (storage.Entry, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("failed to encode %s %s: %w", c.slot, key, err)
	}
	return storage.Entry{Slot: c.slot, Key: key, Value: raw}, nil
}
