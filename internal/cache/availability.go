// Package cache provides an optional Redis cache for the room
// availability query.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roombook/internal/models"
)

const keyPrefix = "availability:"

// AvailabilityCache memoizes availability query results until the next
// reservation mutation. A nil *AvailabilityCache or a zero TTL
// disables caching; lookups then always miss and writes are dropped.
type AvailabilityCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zerolog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *AvailabilityCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &AvailabilityCache{redis: client, ttl: ttl, log: logger}
}

// Get returns the cached room list for the window, if present. Cache
// errors degrade to a miss; the caller recomputes.
func (c *AvailabilityCache) Get(ctx context.Context, date, start, end string) ([]models.Room, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.redis.Get(ctx, key(date, start, end)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil, false
	}

	var rooms []models.Room
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		c.log.Warn().Err(err).Msg("availability cache entry corrupt")
		return nil, false
	}
	return rooms, true
}

// Put stores the room list for the window.
func (c *AvailabilityCache) Put(ctx context.Context, date, start, end string, rooms []models.Room) {
	if c == nil {
		return
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key(date, start, end), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache write failed")
	}
}

// Invalidate drops every cached window. Called after each reservation
// mutation; a stale entry would hide a fresh conflict.
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.redis.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("availability cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache scan failed")
	}
}

func key(date, start, end string) string {
	return fmt.Sprintf("%s%s:%s-%s", keyPrefix, date, start, end)
}
