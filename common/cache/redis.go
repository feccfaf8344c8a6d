package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps JSON encoded values in Redis. Expiry is delegated to the
// server through SET with a TTL, so replicas share one fetch per window.
type RedisStore[T any] struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore[T any](client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore[T]) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var value T
	raw, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("redis get %s: %w", r.key(key), err)
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("decode cached %s: %w", r.key(key), err)
	}
	return value, true, nil
}

func (r *RedisStore[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key(key), err)
	}
	if err := r.client.Set(ctx, r.key(key), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(key), err)
	}
	return nil
}

func (r *RedisStore[T]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
