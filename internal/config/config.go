package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"tasktracker/internal/achievement"
	"tasktracker/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort    string
	AppVersion string

	// Record store
	StoreDriver string
	DatabaseURL string
	SQLitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL string

	LogLevel string
	LogJSON  bool

	// Location used for "today", weekly trend and archive day boundaries
	Location *time.Location

	APIRateLimit  int
	APIRateWindow time.Duration

	TemplatesFile      string
	AchievementTrigger achievement.Trigger
}

// Load reads config from env (and .env if present), exiting on errors
func Load() *Config {
	cfg, err := Read()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// Read is Load for callers that report the error themselves
func Read() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the current environment
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		AppVersion:    getenv("APP_VERSION", "dev"),
		StoreDriver:   getenv("STORE_DRIVER", DriverPostgres),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getenv("SQLITE_PATH", "tracker.db"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		NATSURL:       os.Getenv("NATS_URL"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		TemplatesFile: os.Getenv("TEMPLATES_FILE"),
		APIRateLimit:  120,
		APIRateWindow: time.Minute,
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	loc, err := time.LoadLocation(getenv("TRACKER_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("TRACKER_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateLimit = n
		}
	}
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateWindow = time.Duration(n) * time.Second
		}
	}

	trigger, err := achievement.ParseTrigger(os.Getenv("ACHIEVEMENT_TRIGGER"))
	if err != nil {
		return nil, err
	}
	cfg.AchievementTrigger = trigger

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
