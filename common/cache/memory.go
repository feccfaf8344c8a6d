package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore is an in-process TTL cache. An entry stays fresh for ttl after
// it was stored; reads do not extend it. A non-positive ttl disables caching.
type MemoryStore[T any] struct {
	ttl   time.Duration
	items *ttlcache.Cache[string, T]
}

func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		ttl: ttl,
		items: ttlcache.New[string, T](
			ttlcache.WithTTL[string, T](ttl),
			ttlcache.WithDisableTouchOnHit[string, T](),
		),
	}
}

func (m *MemoryStore[T]) Get(_ context.Context, key string) (T, bool, error) {
	item := m.items.Get(key)
	if item == nil {
		var zero T
		return zero, false, nil
	}
	return item.Value(), true, nil
}

func (m *MemoryStore[T]) Set(_ context.Context, key string, value T) error {
	if m.ttl <= 0 {
		return nil
	}
	m.items.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

func (m *MemoryStore[T]) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}
