// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package cache provides a small read-through JSON cache over Redis for the
// taxonomy listing endpoints (tags, categories) that are read on every page
// load but change rarely. The stats endpoint does not go through it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL is the fixed read-through cache lifetime for cached aggregations.
const TTL = 60 * time.Second

// Cache wraps a Redis client with a typed read-through helper.
type Cache struct {
	client *redis.Client
}

// New builds a Cache over an existing Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetOrLoad returns the cached value under key if present and unexpired;
// otherwise it calls load, caches the result with TTL, and returns it. A
// Redis outage degrades to calling load directly rather than failing the
// request.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Redis is unreachable or erroring: fall through to the source of truth.
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if encoded, marshalErr := json.Marshal(value); marshalErr == nil {
		_ = c.client.Set(ctx, key, encoded, TTL).Err()
	}

	return value, nil
}

// Invalidate removes a cached key, used after admin mutations that would
// otherwise serve stale data for up to TTL.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
