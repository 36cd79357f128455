// Package file keeps client state in a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aliskhannn/learn-scripting/internal/storage"
)

// Store holds all keys in memory and rewrites the whole file on every change.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// Open loads path, or starts empty when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	return s, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return []byte(v), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	return s.update(func(values map[string]string) {
		values[key] = string(value)
	})
}

func (s *Store) SetMany(_ context.Context, values map[string][]byte) error {
	return s.update(func(all map[string]string) {
		for k, v := range values {
			all[k] = string(v)
		}
	})
}

func (s *Store) Delete(_ context.Context, key string) error {
	return s.update(func(values map[string]string) {
		delete(values, key)
	})
}

// update applies fn to a copy and persists it; memory changes only after a successful write.
func (s *Store) update(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	fn(next)

	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// write replaces the file atomically via a temp file and rename.
func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
