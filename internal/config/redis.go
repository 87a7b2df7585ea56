package config

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns a redis client for cache invalidation and commit locks,
// or nil when REDIS_ADDR is unset. The workflow degrades gracefully without
// it: invalidation becomes a no-op and commits skip the distributed lock.
func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}
