package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a JSON-backed cache shared between server instances.
// Pass a ttl of 0 for keys that should not expire.
type Redis[T any] struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a cache for views of type T backed by client.
func NewRedis[T any](client *redis.Client, ttl time.Duration) *Redis[T] {
	return &Redis[T]{client: client, ttl: ttl}
}

// Get returns (nil, false) on any miss, connection error or decode error.
func (c *Redis[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("Cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("Cache entry undecodable", "key", key, "error", err)
		return nil, false
	}
	return &v, true
}

// Set stores value under key. Write errors are logged, not returned.
func (c *Redis[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}
