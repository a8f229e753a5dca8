// Package cache manages the Redis connection used for rate limiting.
package cache

import (
	"context"
	"time"

	"notewall/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// InitRedis connects to Redis at the given address. The connection is
// optional: on failure the client stays nil and callers fail open.
func InitRedis(addr string) {
	c := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.L.Warn("redis unavailable, continuing without it", zap.Error(err))
		return
	}

	client = c
	logger.L.Info("redis connected")
}

// GetClient returns the shared Redis client, or nil when Redis is unavailable.
func GetClient() *redis.Client {
	return client
}
