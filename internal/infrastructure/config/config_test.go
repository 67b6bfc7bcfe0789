package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the tests touch; viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STOCKROOM_APP_NAME",
		"STOCKROOM_APP_ENV",
		"STOCKROOM_APP_PORT",
		"STOCKROOM_DATABASE_HOST",
		"STOCKROOM_DATABASE_PORT",
		"STOCKROOM_DATABASE_PASSWORD",
		"STOCKROOM_DATABASE_MAX_OPEN_CONNS",
		"STOCKROOM_DATABASE_MAX_IDLE_CONNS",
		"STOCKROOM_JWT_SECRET",
		"STOCKROOM_PRINTING_MODE",
		"STOCKROOM_STORAGE_ENABLED",
		"STOCKROOM_TELEMETRY_SAMPLING_RATIO",
		"STOCKROOM_TELEMETRY_PROFILING_ENABLED",
		"STOCKROOM_HTTP_LIST_PAGE_SIZE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "stockroom", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "stockroom", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "console", cfg.Printing.Mode)
		assert.Equal(t, 25, cfg.HTTP.ListPageSize)
		assert.Equal(t, "300-M", cfg.HTTP.RateLimitRate)
		assert.Equal(t, 5*time.Second, cfg.HTTP.IdentLockDuration)
		assert.Equal(t, "stockroom", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with STOCKROOM prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_APP_NAME", "shop-floor")
		t.Setenv("STOCKROOM_APP_PORT", "9000")
		t.Setenv("STOCKROOM_DATABASE_HOST", "db.local")
		t.Setenv("STOCKROOM_DATABASE_PORT", "5433")
		t.Setenv("STOCKROOM_HTTP_LIST_PAGE_SIZE", "50")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shop-floor", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.HTTP.ListPageSize)
		assert.Equal(t, "shop-floor", cfg.Telemetry.ServiceName)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("STOCKROOM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown printing mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_PRINTING_MODE", "laser")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "printing.mode")
	})

	t.Run("pdf printing needs object storage", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_PRINTING_MODE", "pdf")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.enabled")

		t.Setenv("STOCKROOM_STORAGE_ENABLED", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "pdf", cfg.Printing.Mode)
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("profiling requires a server", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_TELEMETRY_PROFILING_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profiling_server")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("requires long jwt.secret in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_APP_ENV", "production")
		t.Setenv("STOCKROOM_JWT_SECRET", "short-secret")
		t.Setenv("STOCKROOM_DATABASE_PASSWORD", "secure-password")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_APP_ENV", "production")
		t.Setenv("STOCKROOM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOCKROOM_APP_ENV", "production")
		t.Setenv("STOCKROOM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("STOCKROOM_DATABASE_PASSWORD", "secure-password")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
