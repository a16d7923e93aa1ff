package cache

import (
	"context"
	"time"

	cachePorts "smartnote/internal/server/ports/cache"
)

// NoopCache - кэш, который ничего не хранит. Используется при выключенном Redis.
type NoopCache struct{}

// NewNoopCache создает кэш-заглушку.
func NewNoopCache() cachePorts.Cache {
	return &NoopCache{}
}

// Get всегда возвращает промах.
func (c *NoopCache) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

// Set ничего не сохраняет.
func (c *NoopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

// Delete ничего не делает.
func (c *NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close ничего не делает.
func (c *NoopCache) Close() error {
	return nil
}
