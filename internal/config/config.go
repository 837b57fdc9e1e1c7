package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath string

	UnavatarBaseURL string
	HTTPTimeoutMs   int
	HTTPUserAgent   string
	RateLimitMs     int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath: getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		UnavatarBaseURL: getEnv("UNAVATAR_BASE_URL", "https://unavatar.io"),
		HTTPTimeoutMs:   getEnvInt("HTTP_TIMEOUT_MS", 10000),
		HTTPUserAgent:   getEnv("HTTP_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
		RateLimitMs:     getEnvInt("RATE_LIMIT_MS", 500),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
