package database

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient builds a redis client from a REDIS_URL style connection
// string, falling back to a sane local default if parsing fails.
func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		opts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	return redis.NewClient(opts)
}
