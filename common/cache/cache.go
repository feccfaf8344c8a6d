// Package cache provides explicit, injectable cache objects. Callers own a
// Store and pass it where it is needed; there is no package-level state.
package cache

import (
	"context"
	"log/slog"

	"github.com/gaolamthuy/storefront/common/globals"
)

// Store holds values of one type under string keys with a store-wide TTL.
type Store[T any] interface {
	// Get reports ok=false for missing or expired keys.
	Get(ctx context.Context, key string) (value T, ok bool, err error)
	Set(ctx context.Context, key string, value T) error
	Delete(ctx context.Context, key string) error
}

// GetOrLoad returns the cached value for key, or calls load and caches its
// result. A failed load is returned as is and nothing is cached. Store
// errors degrade to a miss so a broken cache never hides the origin.
func GetOrLoad[T any](ctx context.Context, s Store[T], key string, load func(context.Context) (T, error)) (value T, hit bool, err error) {
	logger := globals.Logger()

	value, ok, err := s.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Cache read failed, loading from origin", slog.String("key", key), slog.Any("error", err))
	} else if ok {
		return value, true, nil
	}

	value, err = load(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if err := s.Set(ctx, key, value); err != nil {
		logger.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return value, false, nil
}
