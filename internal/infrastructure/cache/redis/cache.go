// Package redis provides the Redis cache implementation.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unifiedui/admin-gateway/internal/core/cache"
)

// Config holds Redis connection configuration.
type Config struct {
	Host       string
	Port       string
	Password   string
	DB         int
	DefaultTTL time.Duration
	// KeyPrefix namespaces every key written by this client.
	KeyPrefix string
}

// Client implements the cache.Client interface for Redis.
type Client struct {
	client     *redis.Client
	defaultTTL time.Duration
	prefix     string
}

var _ cache.Client = (*Client)(nil)

// NewClient creates a new Redis cache client and verifies the connection.
func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{
		client:     rdb,
		defaultTTL: cfg.DefaultTTL,
		prefix:     cfg.KeyPrefix,
	}, nil
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

// Get retrieves a value from Redis by key.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value in Redis with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key from Redis.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Del(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return n > 0, nil
}

// DeletePattern removes all keys matching the given pattern within the
// client's prefix.
func (c *Client) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	var cursor uint64
	var deleted int64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.key(pattern), 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan keys with pattern %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Ping checks if the Redis connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}
