// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"answer-engine/internal/common/config"
	"answer-engine/internal/common/metrics"
)

// SearchCache is an optional read-through cache for raw provider search
// responses. Only black-box provider payloads are stored; request-scoped
// state is never persisted.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed search cache.
func New(cfg config.RedisConfig, ttl time.Duration) *SearchCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &SearchCache{client: rdb, ttl: ttl}
}

// NewWithClient wraps an existing Redis client. Used in tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (c *SearchCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *SearchCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Key builds the cache key for one category search. The query is hashed so
// arbitrary user text never appears in key space.
func Key(category, query string) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("search:%s:%s", category, hex.EncodeToString(sum[:]))
}

// Get returns the cached raw payload for a category search, if present.
// A nil receiver behaves as a permanent miss, so callers can run uncached.
func (c *SearchCache) Get(ctx context.Context, category, query string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, Key(category, query)).Bytes()
	if err != nil {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return val, true
}

// Set stores a raw provider payload with the configured TTL. Failures are
// ignored; the cache is best-effort.
func (c *SearchCache) Set(ctx context.Context, category, query string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, Key(category, query), payload, c.ttl).Err(); err != nil {
		metrics.CacheOps.WithLabelValues("error").Inc()
		return
	}
	metrics.CacheOps.WithLabelValues("store").Inc()
}
