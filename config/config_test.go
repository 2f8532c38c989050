package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigSQLiteDeployment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "test.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "test.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, CacheOff, cfg.CacheMode)
}

func TestLoadConfigPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	err := ValidateConfig(&Config{
		ServerPort: "8080",
		DBDriver:   "oracle",
		CacheMode:  CacheOff,
		JWTSecret:  "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown DB_DRIVER")
}

func TestValidateConfigCacheAsideNeedsPostgres(t *testing.T) {
	err := ValidateConfig(&Config{
		ServerPort: "8080",
		DBDriver:   DriverSQLite,
		SQLitePath: "x.db",
		CacheMode:  CacheAside,
		JWTSecret:  "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_MODE=aside requires DB_DRIVER=postgres")
}

func TestValidateConfigRequiresJWTSecret(t *testing.T) {
	err := ValidateConfig(&Config{
		ServerPort: "8080",
		DBDriver:   DriverSQLite,
		SQLitePath: "x.db",
		CacheMode:  CacheOff,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
