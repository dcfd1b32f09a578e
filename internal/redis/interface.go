package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the Redis surface the repositories use. Single-node and cluster
// clients both satisfy it, so repositories never know which one they got.
type Client interface {
	redis.UniversalClient
}
