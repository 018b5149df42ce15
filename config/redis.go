package config

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/elonavr/FitTrack-API/cache"
)

// InitCache connects to Redis when REDIS_URL is set, and otherwise
// falls back to the in-process store so local development works without
// a cache tier.
func InitCache() cache.Store {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Printf("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryStore()
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	return cache.NewRedisStore(redis.NewClient(opts))
}
