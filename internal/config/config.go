package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// CacheDriver selects the slot cache implementation.
type CacheDriver string

const (
	CacheDriverLRU   CacheDriver = "lru"
	CacheDriverRedis CacheDriver = "redis"
	CacheDriverOff   CacheDriver = "off"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Slot cache
	CacheDriver    CacheDriver
	CacheSlotsSize int
	CacheTTL       time.Duration
	RedisAddr      string

	// Reminder dispatch
	KafkaBrokers       []string
	KafkaReminderTopic string

	// Calendar integrations
	GoogleClientID       string
	GoogleClientSecret   string
	GoogleRedirectURL    string
	CalendarSyncInterval time.Duration
	IntegrationStaleness time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing owner tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error

	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Slot cache driver: lru (in-process), redis (shared) or off.
	driver := CacheDriver(getEnv("CACHE_DRIVER", string(CacheDriverLRU)))
	switch driver {
	case CacheDriverLRU, CacheDriverRedis, CacheDriverOff:
		cfg.CacheDriver = driver
	default:
		return nil, fmt.Errorf("invalid CACHE_DRIVER: %q", driver)
	}

	cfg.CacheSlotsSize, err = getEnvAsInt("CACHE_SLOTS_SIZE", 512)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SLOTS_SIZE: %w", err)
	}

	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	if cfg.CacheDriver == CacheDriverRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_DRIVER=redis")
	}

	// Reminder dispatch is optional: empty broker list disables publishing.
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaReminderTopic = getEnv("KAFKA_REMINDER_TOPIC", "reminders.scheduled.v1")

	// Google Calendar sync is optional: missing credentials disable the syncer.
	cfg.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", "")
	cfg.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", "")
	cfg.GoogleRedirectURL = getEnv("GOOGLE_REDIRECT_URL", "")

	cfg.CalendarSyncInterval, err = getEnvAsDuration("CALENDAR_SYNC_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	// Snapshots older than this threshold are excluded from aggregation.
	cfg.IntegrationStaleness, err = getEnvAsDuration("INTEGRATION_STALENESS", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "15m", "1h"). Returns the default if the variable is not set.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
