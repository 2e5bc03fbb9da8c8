package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	// Feed tuning. The window bounds how far back the aggregator
	// looks; page size caps the merged result.
	FeedWindowDays int
	FeedPageSize   int
	FeedCacheTTL   time.Duration

	// When true, finalizing a session that never recorded a Stop
	// synthesizes one at the current time instead of failing.
	SynthesizeStopOnFinalize bool
}

func Load() Config {

	cfg := Config{

		AppPort: getenvDefault("APP_PORT", "3001"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		FeedWindowDays: getenvInt("FEED_WINDOW_DAYS", 7),
		FeedPageSize:   getenvInt("FEED_PAGE_SIZE", 50),
		FeedCacheTTL:   getenvDuration("FEED_CACHE_TTL", 30*time.Second),

		SynthesizeStopOnFinalize: getenvBool("SYNTHESIZE_STOP_ON_FINALIZE", true),
	}

	return cfg

}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
