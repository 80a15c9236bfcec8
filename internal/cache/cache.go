// Package cache wraps Redis behind a fail-open client: when Redis is down or
// unreachable, reads behave as misses and writes are dropped, so request
// handling falls back to the database instead of erroring.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a nil-safe Redis wrapper. A nil *Client is a disabled cache.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis-backed cache client.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the cached value, or nil on a miss or any Redis error.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// Set stores a value with a TTL. Redis errors are dropped.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, key, value, ttl)
}

// Delete removes keys. Redis errors are dropped.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
