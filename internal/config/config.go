package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"feedback-desk/internal/storage"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string
	LogLevel string

	StorageDriver string
	StorageKey    string

	SQLitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI string
	DBName   string

	CORSOrigins []string

	ResendAPIKey string
	FromEmail    string
	NotifyEmail  string
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; production sets env vars directly.
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		StorageKey:    getEnv("STORAGE_KEY", storage.DefaultKey),
		SQLitePath:    getEnv("SQLITE_PATH", "feedback.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		MongoURI:      getEnv("MONGODB_URI", ""),
		DBName:        getEnv("DB_NAME", "feedback"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		FromEmail:     getEnv("FROM_EMAIL", ""),
		NotifyEmail:   getEnv("NOTIFY_EMAIL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverMemory, DriverRedis:
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the %s storage driver", DriverMongo)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// EmailEnabled reports whether new-feedback alerts go out by email.
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.FromEmail != "" && c.NotifyEmail != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
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
