// Package storage defines the durable key-value store the client persists to.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("key not found")

// Store is a string-keyed blob store, the equivalent of browser local storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// BatchSetter is implemented by stores that can write several keys atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

// SetMany writes all values, atomically when the store supports it.
func SetMany(ctx context.Context, s Store, values map[string][]byte) error {
	if bs, ok := s.(BatchSetter); ok {
		return bs.SetMany(ctx, values)
	}

	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// GetJSON reads a key and decodes it into out.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
