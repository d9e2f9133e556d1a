// Package cache is a small Redis-backed read-through cache for derived
// read-API payloads (year lists, group listings, themes). Values are stored
// as JSON under "timeline:{kind}:{slug}". Redis failures never fail a
// request: they are logged and the loader is called instead.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key written by this package.
const keyPrefix = "timeline:"

// Cache stores JSON-encodable payloads keyed by kind and timeline slug.
type Cache interface {
	// Get decodes the cached payload into dst. It reports false on a miss
	// or on any Redis/decoding error.
	Get(ctx context.Context, kind, slug string, dst any) bool

	// Set stores the payload with the cache TTL.
	Set(ctx context.Context, kind, slug string, value any)

	// Invalidate deletes the cached payloads of the given kinds for every slug.
	Invalidate(ctx context.Context, kinds ...string)
}

// Key returns the Redis key for a kind/slug pair.
func Key(kind, slug string) string {
	return keyPrefix + kind + ":" + slug
}

// redisCache implements Cache on a go-redis client.
type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a Cache backed by rdb. A nil client yields a no-op cache so
// tests and Redis-less deployments keep working.
func New(rdb *redis.Client, ttl time.Duration) Cache {
	if rdb == nil {
		return noop{}
	}
	return &redisCache{rdb: rdb, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, kind, slug string, dst any) bool {
	data, err := c.rdb.Get(ctx, Key(kind, slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("cache read failed", slog.String("kind", kind), slog.String("slug", slug), slog.Any("error", err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("cache entry undecodable", slog.String("kind", kind), slog.String("slug", slug), slog.Any("error", err))
		return false
	}
	return true
}

func (c *redisCache) Set(ctx context.Context, kind, slug string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache entry unencodable", slog.String("kind", kind), slog.Any("error", err))
		return
	}
	if err := c.rdb.Set(ctx, Key(kind, slug), data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", slog.String("kind", kind), slog.String("slug", slug), slog.Any("error", err))
	}
}

// Invalidate scans for keyPrefix+kind+":*" and deletes the matches.
func (c *redisCache) Invalidate(ctx context.Context, kinds ...string) {
	for _, kind := range kinds {
		iter := c.rdb.Scan(ctx, 0, keyPrefix+kind+":*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			slog.Warn("cache scan failed", slog.String("kind", kind), slog.Any("error", err))
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			slog.Warn("cache invalidation failed", slog.String("kind", kind), slog.Any("error", err))
		}
	}
}

// noop is the Cache used when Redis is not configured.
type noop struct{}

func (noop) Get(context.Context, string, string, any) bool { return false }
func (noop) Set(context.Context, string, string, any)      {}
func (noop) Invalidate(context.Context, ...string)         {}

// Load returns the cached value for kind/slug, or calls load, caches its
// result and returns it. Load errors are returned uncached.
func Load[T any](ctx context.Context, c Cache, kind, slug string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, kind, slug, &cached) {
		return cached, nil
	}
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	c.Set(ctx, kind, slug, value)
	return value, nil
}
