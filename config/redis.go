package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis is fatal on failure: Redis holds every session's cart and the
// asset cache buckets, so the service cannot run without it.
func ConnectRedis() {
	var opt *redis.Options
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		parsedOpt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr:     AppConfig.RedisAddr,
			Password: AppConfig.RedisPassword,
			DB:       0,
		}
	}

	Redis = redis.NewClient(opt)

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}

	log.Println("Redis connected")
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}
