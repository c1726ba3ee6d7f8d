package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	UpstreamBaseURL string

	RedisAddr     string
	RedisPassword string

	StorageNamespace string
}

func Load() Config {

	// Optional .env for local development; real env wins.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getenv("APP_PORT", "3000"),

		UpstreamBaseURL: getenv("UPSTREAM_BASE_URL", "https://dummyjson.com"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		StorageNamespace: getenv("STORAGE_NAMESPACE", "default"),
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
