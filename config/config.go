package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Database drivers selectable per deployment. Postgres is the
// remote-authoritative store; sqlite is the local-file deployment. A process
// runs exactly one of them.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Cache modes for the entry store. "off" reads straight from the database;
// "aside" puts a redis cache-aside layer in front of it.
const (
	CacheOff   = "off"
	CacheAside = "aside"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Entry cache configuration
	CacheMode string

	// JWT configuration
	JWTSecret string
}

// LoadConfig creates a new Config instance from environment variables, with
// Docker secrets filling in sensitive values outside CI.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", ""),
		DBName:     getEnv("DB_NAME", "calovate"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "calovate.db"),
		RedisHost:  getEnv("REDIS_HOST", "localhost"),
		RedisPort:  getEnv("REDIS_PORT", "6379"),
		RedisURL:   os.Getenv("REDIS_URL"),
		RedisDB:    0,
		CacheMode:  getEnv("CACHE_MODE", CacheOff),
	}

	// Sensitive values come from the environment in CI and from Docker
	// secrets everywhere else; an explicit env var always wins.
	cfg.DBPassword = getSecret("DB_PASSWORD", "db_password")
	cfg.RedisPassword = getSecret("REDIS_PASSWORD", "redis_password")
	cfg.JWTSecret = getSecret("JWT_SECRET", "jwt_secret")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getSecret(envKey, secretName string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
