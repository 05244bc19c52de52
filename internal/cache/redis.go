// Package cache is a small redis-backed store for marshaled day views.
// Mutations invalidate the affected day, so a hit is never more stale than
// the TTL and usually exact.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type DayCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis; it returns nil (cache disabled) when addr is empty
// or the server is unreachable, so the API keeps working without redis.
func New(addr, password string, ttl time.Duration) *DayCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, schedule cache disabled")
		return nil
	}
	return &DayCache{client: client, ttl: ttl}
}

func (c *DayCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (c *DayCache) Set(ctx context.Context, key string, val []byte) {
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache set failed")
	}
}

func (c *DayCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache invalidate failed")
	}
}
