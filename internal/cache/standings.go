package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clubsite/backend/internal/metrics"
	"clubsite/backend/internal/models"
	"clubsite/backend/internal/standings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	StandingsKeyPrefix  = "standings:"
	DefaultStandingsTTL = 6 * time.Hour
)

// StandingsCache is a read-through Redis layer in front of a standings Store.
// Writes go to the inner store and drop the cached copy, so the next read
// repopulates it from the store. Redis failures are logged and the inner
// store is used.
type StandingsCache struct {
	inner  standings.Store
	client *redis.Client
	ttl    time.Duration
}

// NewStandingsCache wraps inner with a Redis cache
func NewStandingsCache(inner standings.Store, client *redis.Client, ttl time.Duration) *StandingsCache {
	if ttl <= 0 {
		ttl = DefaultStandingsTTL
	}
	return &StandingsCache{inner: inner, client: client, ttl: ttl}
}

func cacheKey(key string) string {
	return StandingsKeyPrefix + key
}

// Get serves from Redis when possible and fills Redis on a miss
func (c *StandingsCache) Get(ctx context.Context, key string) (*models.StandingsSnapshot, error) {
	start := time.Now()
	b, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	metrics.RecordCacheOperation("get", time.Since(start))

	switch {
	case err == nil:
		var snap models.StandingsSnapshot
		uerr := json.Unmarshal(b, &snap)
		if uerr == nil {
			metrics.RecordCacheHit()
			return &snap, nil
		}
		log.Warn().Err(uerr).Str("key", key).Msg("Discarding unreadable cached standings")
	case errors.Is(err, redis.Nil):
	default:
		log.Warn().Err(err).Str("key", key).Msg("Redis read failed, falling back to store")
	}

	metrics.RecordCacheMiss()

	snap, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		c.set(ctx, key, snap)
	}
	return snap, nil
}

// Upsert writes the inner store, then drops the cached copy. The cache is
// only ever filled from a store read, so it never holds an older snapshot
// than the one a concurrent writer left in the store.
func (c *StandingsCache) Upsert(ctx context.Context, key string, snap *models.StandingsSnapshot) error {
	if err := c.inner.Upsert(ctx, key, snap); err != nil {
		return err
	}

	start := time.Now()
	if err := c.Invalidate(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cached standings may be stale")
		return nil
	}
	metrics.RecordCacheOperation("del", time.Since(start))
	return nil
}

// Invalidate drops the cached copy of key
func (c *StandingsCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached standings: %w", err)
	}
	return nil
}

func (c *StandingsCache) set(ctx context.Context, key string, snap *models.StandingsSnapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to marshal standings for cache")
		return
	}

	start := time.Now()
	if err := c.client.Set(ctx, cacheKey(key), b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache standings")
		// a stale entry must not outlive a newer snapshot
		_ = c.client.Del(ctx, cacheKey(key)).Err()
		return
	}
	metrics.RecordCacheOperation("set", time.Since(start))
}
