// Package cache provides the Redis-backed consolidated-profile cache. The
// dataset is read-only, so a resolved profile stays valid for the full TTL;
// repeat lookups of hot identifiers skip the traversal entirely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"deeplink/internal/lookup/metrics"
	"deeplink/internal/lookup/models"
	"deeplink/pkg/platform/sentinel"
)

const profileKeyPrefix = "deeplink:profile:"

// RedisCache stores consolidated profiles as JSON values with a TTL.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// Option configures a RedisCache.
type Option func(*RedisCache)

// WithMetrics records hit/miss counters on the given metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *RedisCache) {
		c.metrics = m
	}
}

// NewRedis constructs a Redis-backed profile cache.
func NewRedis(client *redis.Client, ttl time.Duration, opts ...Option) *RedisCache {
	c := &RedisCache{client: client, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached profile for a canonical identifier, or
// sentinel.ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, phone string) (*models.LookupResult, error) {
	payload, err := c.client.Get(ctx, profileKeyPrefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.RecordCacheMiss()
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached profile: %w", err)
	}

	var result models.LookupResult
	if err := json.Unmarshal(payload, &result); err != nil {
		// A corrupt entry behaves like a miss; the fresh result overwrites it.
		c.metrics.RecordCacheMiss()
		return nil, sentinel.ErrNotFound
	}

	c.metrics.RecordCacheHit()
	return &result, nil
}

// Set stores a resolved profile under the canonical identifier.
func (c *RedisCache) Set(ctx context.Context, phone string, result *models.LookupResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := c.client.Set(ctx, profileKeyPrefix+phone, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached profile: %w", err)
	}
	return nil
}
