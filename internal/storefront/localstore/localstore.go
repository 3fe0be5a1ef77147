// Package localstore persists the anonymous cart on the shopper's device.
// The list lives under one fixed key; a missing or unreadable entry loads as
// an empty list.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang-storefront/pkg/cache"
)

// CartKey is the fixed storage key of the anonymous cart.
const CartKey = "cart"

// File keeps the list as JSON in dir/<key>.json.
type File[T any] struct {
	mu   sync.Mutex
	path string
}

func NewFile[T any](dir, key string) *File[T] {
	return &File[T]{path: filepath.Join(dir, key+".json")}
}

func (f *File[T]) Load(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return items, nil
}

// Save writes through a temp file and rename so a crash never leaves a
// half-written list behind.
func (f *File[T]) Save(_ context.Context, items []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Redis keeps the list in a shared Redis, for storefront processes that do
// not own a writable disk.
type Redis[T any] struct {
	cache *cache.RedisCache
	key   string
}

func NewRedis[T any](c *cache.RedisCache, device, key string) *Redis[T] {
	return &Redis[T]{cache: c, key: device + ":" + key}
}

func (r *Redis[T]) Load(ctx context.Context) ([]T, error) {
	var items []T
	err := r.cache.GetWithPrefix(ctx, "local", r.key, &items)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Redis[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return r.cache.SetWithPrefix(ctx, "local", r.key, items, 0)
}
