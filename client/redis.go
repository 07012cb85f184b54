package client

import (
	"context"
	"log"
	"sync"
	"time"

	"atm-monitor/config"

	"github.com/go-redis/redis/v8"
)

var (
	rdb   *redis.Client
	rOnce sync.Once
	Ctx   = context.Background()
)

// ConnectRedis returns the shared Redis client, or nil when REDIS_URI is not configured.
func ConnectRedis() *redis.Client {
	if config.AppConfig.RedisURI == "" {
		return nil
	}
	rOnce.Do(func() {
		opts, err := redis.ParseURL(config.AppConfig.RedisURI)
		if err != nil {
			log.Fatal("Failed to parse redis URL:", err)
		}
		opts.DialTimeout = 5 * time.Second
		opts.ReadTimeout = 5 * time.Second
		opts.WriteTimeout = 5 * time.Second
		rdb = redis.NewClient(opts)
		if err = rdb.Ping(Ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
	})
	return rdb
}
