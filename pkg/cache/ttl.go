package cache

import (
	"context"
	"time"
)

// TTLCache replaces the TTL of every Set with a fixed value, so a
// configured lifetime applies regardless of entry kind.
type TTLCache struct {
	Cache
	ttl time.Duration
}

// WithTTL wraps c. A ttl <= 0 returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return &TTLCache{Cache: c, ttl: ttl}
}

// Set stores data with the wrapper's TTL.
func (c *TTLCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *TTLCache) Clear(ctx context.Context) (int, error) {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}

// Unwrap returns the wrapped cache.
func (c *TTLCache) Unwrap() Cache { return c.Cache }

var (
	_ Cache   = (*TTLCache)(nil)
	_ Clearer = (*TTLCache)(nil)
)
