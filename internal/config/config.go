package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Setup       SetupConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	// URL is the postgres connection string. When empty the server falls
	// back to the file-backed store at FilePath.
	URL            string
	FilePath       string
	MaxConnections int
}

type AuthConfig struct {
	SecretKey     string
	SessionTTL    time.Duration
	AdminUsername string
	AdminPassword string
}

type SetupConfig struct {
	Key string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	// A missing .env file is fine; env vars may come from the host.
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			URL:            normalizeDatabaseURL(getEnv("DATABASE_URL", "")),
			FilePath:       getEnv("DATA_FILE", "portfolio.json"),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 10),
		},
		Auth: AuthConfig{
			SecretKey:     getEnv("SECRET_KEY", ""),
			SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Setup: SetupConfig{
			Key: getEnv("SETUP_KEY", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Auth.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.Auth.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if cfg.Setup.Key == "" {
		cfg.Setup.Key = cfg.Auth.SecretKey
	}
	return cfg, nil
}

// normalizeDatabaseURL rewrites the legacy postgres:// scheme still emitted by
// some hosting providers to the postgresql:// scheme the driver expects.
func normalizeDatabaseURL(raw string) string {
	if strings.HasPrefix(raw, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	return raw
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
