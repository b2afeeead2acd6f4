// Package cache defines the key/value cache used to persist list view state.
package cache

import (
	"context"
	"time"
)

// Type represents the type of cache.
type Type string

const (
	// TypeRedis represents a Redis cache.
	TypeRedis Type = "redis"
)

// Client defines the cache operations used by the service.
type Client interface {
	// Get retrieves a value by key. It returns nil, nil when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero ttl uses the client's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes every key matching a glob pattern and returns
	// the number of keys removed.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Ping checks if the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
