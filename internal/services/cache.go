package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProductCache fronts the record store on the join's product lookups. Both
// services must share one cache: the catalog invalidates what the order join
// reads, otherwise an edited or deleted product keeps serving stale JSON
// until the TTL runs out.
type ProductCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Del(ctx context.Context, key string)
}

func productCacheKey(id string) string {
	return "product:" + id
}

type redisProductCache struct {
	client *redis.Client
}

func NewRedisProductCache(client *redis.Client) ProductCache {
	return &redisProductCache{client: client}
}

func (c *redisProductCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *redisProductCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	c.client.Set(ctx, key, value, ttl)
}

func (c *redisProductCache) Del(ctx context.Context, key string) {
	c.client.Del(ctx, key)
}
