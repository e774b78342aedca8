package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis establishes connection to the redis server used by the
// read-side book cache. Returns nil without error when the cache is disabled;
// the caller then wires the plain book service.
func ConnectRedis(cfg *Config) (*redis.Client, error) {
	if !cfg.Cache.Enabled {
		log.Println("ℹ️ Read-side cache disabled, skipping redis connection")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("✅ Redis connected successfully [%s db=%d]", cfg.RedisAddr(), cfg.Redis.DB)
	return client, nil
}
