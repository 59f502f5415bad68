package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	CatalogURL     string
	CatalogTimeout time.Duration
	SyncCron       string
	SyncOnStart    bool

	JWTSecret string

	TelegramToken    string
	TelegramChat     string
	TelegramThreadID *int

	HTTPPort string
	LogLevel string
	AppEnv   string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		StorageDriver:    envOrDefault("STORAGE_DRIVER", StoragePostgres),
		DBHost:           envOrDefault("DB_HOST", "localhost"),
		DBPort:           envOrDefault("DB_PORT", "5432"),
		DBUser:           envOrDefault("DB_USERNAME", "postgres"),
		DBPassword:       envOrDefault("DB_PASSWORD", "postgres"),
		DBName:           envOrDefault("DB_DATABASE", "granteval"),
		DBSSLMode:        envOrDefault("DB_SSLMODE", "disable"),
		CatalogURL:       envOrDefault("CATALOG_URL", "https://manifund.org/api/v0/projects"),
		SyncCron:         os.Getenv("SYNC_CRON"),
		JWTSecret:        os.Getenv("AUTH_JWT_SECRET"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChat:     os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramThreadID: nil,
		HTTPPort:         envOrDefault("HTTP_PORT", "3000"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		AppEnv:           envOrDefault("APP_ENV", "production"),
	}

	var err error
	if cfg.CatalogTimeout, err = envOrDuration("CATALOG_TIMEOUT", 60*time.Second); err != nil {
		return cfg, err
	}
	if cfg.SyncOnStart, err = envOrBool("SYNC_ON_START", true); err != nil {
		return cfg, err
	}
	if cfg.TelegramThreadID, err = envOrIntPtr("TELEGRAM_CHAT_THREAD_ID"); err != nil {
		return cfg, err
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("missing AUTH_JWT_SECRET")
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
			return cfg, errors.New("missing database configuration")
		}
	default:
		return cfg, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if (cfg.TelegramToken == "") != (cfg.TelegramChat == "") {
		return cfg, errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChat != ""
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envOrIntPtr(key string) (*int, error) {
	val := os.Getenv(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &parsed, nil
}

func envOrBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// envOrDuration accepts Go durations ("90s") or a bare number of seconds.
func envOrDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
