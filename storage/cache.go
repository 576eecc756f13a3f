package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is a best-effort redis cache for public calendar payloads. A nil
// *Cache is valid and disables caching; every failure degrades to a miss.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewCache connects to redis at addr. An empty addr disables caching.
func NewCache(addr string, log *zap.Logger) *Cache {
	if addr == "" {
		log.Info("redis address not set, calendar caching disabled")
		return nil
	}

	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 5 * time.Minute,
		log: log,
	}
}

// Get returns the cached payload for key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores payload under key with the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateCalendar drops every cached calendar month. Called after admin
// writes that change what the calendar shows.
func (c *Cache) InvalidateCalendar(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, "calendar:*").Result()
	if err != nil {
		c.log.Debug("cache invalidation scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug("cache invalidation failed", zap.Error(err))
	}
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
