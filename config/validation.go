package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration is internally consistent for
// the selected deployment.
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER is required for the postgres deployment")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret (or DB_PASSWORD) is required for the postgres deployment")
		}
		if cfg.DBName == "" {
			errors = append(errors, "DB_NAME is required for the postgres deployment")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			errors = append(errors, "SQLITE_PATH is required for the sqlite deployment")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown DB_DRIVER %q (want %q or %q)", cfg.DBDriver, DriverPostgres, DriverSQLite))
	}

	switch cfg.CacheMode {
	case CacheOff:
	case CacheAside:
		// The cache-aside layer fronts the remote store; caching a local
		// sqlite file through redis would merge the two historical behaviors
		// this layout deliberately keeps apart.
		if cfg.DBDriver != DriverPostgres {
			errors = append(errors, "CACHE_MODE=aside requires DB_DRIVER=postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown CACHE_MODE %q (want %q or %q)", cfg.CacheMode, CacheOff, CacheAside))
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, "jwt_secret secret (or JWT_SECRET) is required")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
