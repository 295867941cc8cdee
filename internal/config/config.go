package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Token signing
	JWTSecret string
	JWTExpire time.Duration

	// Admin registration secret (role escalation path)
	AdminSecret string

	// Browser origins allowed by CORS
	ClientOrigins []string

	// Optional Kafka event publishing
	KafkaBrokers []string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when present. The signing secret is mandatory: the process must not
// start without it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional in production deployments
		slog.Debug("no .env file found, using process environment")
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "5000"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	expire := getEnv("JWT_EXPIRE", "720h") // 30 days
	d, err := time.ParseDuration(expire)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE %q: %w", expire, err)
	}
	cfg.JWTExpire = d

	cfg.ClientOrigins = splitList(getEnv("CLIENT_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"))
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
