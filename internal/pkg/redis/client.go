package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mAbdullah821/gallery-app-task/internal/pkg/config"
)

var client *redis.Client

// Init initializes the Redis client. Redis is optional: callers that get an
// error keep running with redis-backed features disabled.
func Init(cfg config.RedisConfig) error {
	c := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	if err := c.Ping(context.Background()).Err(); err != nil {
		return err
	}

	client = c
	zap.L().Info("Redis connected successfully", zap.String("addr", cfg.Addr))
	return nil
}

// GetClient returns the Redis client, or nil when Init was skipped or failed
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}
