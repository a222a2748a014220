package redisx

import (
	redis "github.com/redis/go-redis/v9"
)

// NewClient returns a Redis client for the rate-limiting middleware. The
// limiter fails open, so a missing Redis never blocks requests.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
