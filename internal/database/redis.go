package database

import (
	"context"
	"fmt"
	"time"

	"github.com/decorra/decorra/internal/config"
	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to the Redis instance that backs one-time passcodes and
// verifies connectivity before returning the client.
func OpenRedis(cfg config.Redis) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
