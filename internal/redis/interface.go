package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so the cache can run against a single
// node, a cluster, or miniredis in tests.
type Client interface {
	redis.UniversalClient
}
