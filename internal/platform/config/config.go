// Package config builds process configuration from the environment so main
// stays lean.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	strutil "bahay/pkg/platform/strings"
)

// Config captures everything the server process needs at startup. Optional
// backends (Redis, Kafka) stay disabled when their settings are empty.
type Config struct {
	Addr           string
	DatabaseURL    string
	RedisURL       string
	KafkaBrokers   []string
	KafkaTopic     string
	JWTSigningKey  string
	JWTIssuer      string
	TokenTTL       time.Duration
	UnreadCacheTTL time.Duration
	LogLevel       slog.Level
}

// FromEnv reads configuration from BAHAY_* environment variables, applying
// development defaults where safe.
func FromEnv() Config {
	cfg := Config{
		Addr:           envOr("BAHAY_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("BAHAY_DATABASE_URL"),
		RedisURL:       os.Getenv("BAHAY_REDIS_URL"),
		KafkaTopic:     envOr("BAHAY_KAFKA_TOPIC", "bahay.audit"),
		JWTSigningKey:  envOr("BAHAY_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:      envOr("BAHAY_JWT_ISSUER", "bahay"),
		TokenTTL:       durationOr("BAHAY_TOKEN_TTL", 24*time.Hour),
		UnreadCacheTTL: durationOr("BAHAY_UNREAD_CACHE_TTL", 5*time.Minute),
		LogLevel:       parseLevel(os.Getenv("BAHAY_LOG_LEVEL")),
	}
	if brokers := os.Getenv("BAHAY_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strutil.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
