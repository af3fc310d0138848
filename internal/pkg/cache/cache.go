package cache

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"

	"github.com/gofiber/storage/redis"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/Yatube/internal/pkg/env"
)

// Redis databases used by the application
const (
	DBDefault  = 0
	DBSessions = 1
	DBPages    = 2
)

var (
	client *goredis.Client
	ctx    = context.Background()
)

// SetupCache initializes the connection to the redis server
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       DBDefault,
	})

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to redis: %v", err)
	} else {
		log.Printf("Successfully connected to redis: %s", pong)
	}
}

// GetClient returns the Redis client instance
func GetClient() *goredis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// SetClient replaces the shared client, used with miniredis in tests
func SetClient(c *goredis.Client) {
	client = c
}

// Ping reports whether redis answers
func Ping() error {
	if err := GetClient().Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// NewStorage returns a fiber.Storage on database db of the server the shared client
// points to.
func NewStorage(db int) *redis.Storage {
	opts := GetClient().Options()
	host, port := "localhost", 6379
	if h, p, err := net.SplitHostPort(opts.Addr); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: opts.Password,
		Database: db,
		Reset:    false,
	})
}
