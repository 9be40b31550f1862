package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces cached Data Dragon responses.
const DefaultKeyPrefix = "ddragon:"

// ResponseCache stores raw HTTP bodies. A zero TTL keeps the entry until
// it is evicted.
type ResponseCache struct {
	client Client
	prefix string
}

func NewResponseCache(client Client, prefix string) *ResponseCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &ResponseCache{client: client, prefix: prefix}
}

func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *ResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, body, ttl).Err()
}

// Purge drops every cached response under the prefix.
func (c *ResponseCache) Purge(ctx context.Context) (int, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := c.client.Del(ctx, keys...).Result()
	return int(n), err
}
