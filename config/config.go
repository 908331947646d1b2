package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevSessionSecret signs sessions when SESSION_SECRET is unset. Never use it in production.
const DevSessionSecret = "sunrise-dev-session-secret"

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    slog.Level

	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool

	CORSOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string
	KafkaOrdersTopic string

	Admin AdminAccount
}

// AdminAccount is the administrative user created on first start.
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// IsPostgres reports whether DatabaseURL points at postgres rather than a sqlite file.
func (c Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://") ||
		strings.HasPrefix(c.DatabaseURL, "host=")
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, so tests can avoid the real environment.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:             get("PORT", "8080"),
		DatabaseURL:      get("DATABASE_URL", "sunrise.db"),
		SessionSecret:    get("SESSION_SECRET", ""),
		CORSOrigins:      splitList(get("CORS_ORIGINS", "*")),
		RedisAddr:        get("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD"),
		KafkaBrokers:     splitList(get("KAFKA_BROKERS", "")),
		KafkaOrdersTopic: get("KAFKA_ORDERS_TOPIC", "sunrise.orders.placed"),
		Admin: AdminAccount{
			Username: get("ADMIN_USERNAME", "sunrise_admin"),
			Email:    get("ADMIN_EMAIL", "admin@sunrisecafe.com"),
			Password: get("ADMIN_PASSWORD", "password"),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	if cfg.SessionCookieSecure, err = strconv.ParseBool(get("SESSION_COOKIE_SECURE", "false")); err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_COOKIE_SECURE: %w", err)
	}

	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set, using the development secret")
		cfg.SessionSecret = DevSessionSecret
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
