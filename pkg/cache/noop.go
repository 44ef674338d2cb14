package cache

import (
	"context"
	"time"
)

// noopCache satisfies Cache without storing anything. Used when Redis
// is disabled by configuration and in unit tests.
type noopCache struct{}

func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (noopCache) Ping(ctx context.Context) error { return nil }
