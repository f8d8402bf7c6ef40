package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the tests touch. Viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"KHATA_APP_NAME", "KHATA_APP_ENV", "KHATA_APP_PORT",
		"KHATA_DATABASE_DRIVER", "KHATA_DATABASE_HOST", "KHATA_DATABASE_PORT",
		"KHATA_DATABASE_USER", "KHATA_DATABASE_PASSWORD", "KHATA_DATABASE_DBNAME",
		"KHATA_DATABASE_SSLMODE", "KHATA_DATABASE_SQLITE_PATH",
		"KHATA_DATABASE_MAX_OPEN_CONNS", "KHATA_DATABASE_MAX_IDLE_CONNS",
		"KHATA_REPORT_BUCKET_LOW", "KHATA_REPORT_BUCKET_HIGH", "KHATA_REPORT_SMART_SELECTION",
		"KHATA_SWAGGER_ENABLED", "KHATA_SWAGGER_ALLOWED_IPS",
		"KHATA_TELEMETRY_SAMPLING_RATIO", "KHATA_TELEMETRY_PROFILING_ENABLED",
		"KHATA_REDIS_NAME_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "khata-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "khata", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 60, cfg.Report.BucketLow)
		assert.Equal(t, 120, cfg.Report.BucketHigh)
		assert.True(t, cfg.Report.SmartSelection)
		assert.Equal(t, 10*time.Minute, cfg.Redis.NameTTL)
		assert.Equal(t, 200*time.Millisecond, cfg.Telemetry.DBSlowQueryThresh)
	})

	t.Run("loads values from environment variables with KHATA prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_APP_NAME", "test-app")
		t.Setenv("KHATA_APP_PORT", "9000")
		t.Setenv("KHATA_DATABASE_HOST", "testdb.local")
		t.Setenv("KHATA_DATABASE_PORT", "5433")
		t.Setenv("KHATA_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("KHATA_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("KHATA_REPORT_BUCKET_LOW", "30")
		t.Setenv("KHATA_REPORT_BUCKET_HIGH", "90")
		t.Setenv("KHATA_REPORT_SMART_SELECTION", "false")
		t.Setenv("KHATA_REDIS_NAME_TTL", "1m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 30, cfg.Report.BucketLow)
		assert.Equal(t, 90, cfg.Report.BucketHigh)
		assert.False(t, cfg.Report.SmartSelection)
		assert.Equal(t, time.Minute, cfg.Redis.NameTTL)
	})

	t.Run("sqlite driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_DATABASE_DRIVER", "sqlite")
		t.Setenv("KHATA_DATABASE_SQLITE_PATH", "/tmp/khata.db")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/khata.db", cfg.Database.DSN())
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("KHATA_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates bucket order", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_REPORT_BUCKET_LOW", "100")
		t.Setenv("KHATA_REPORT_BUCKET_HIGH", "50")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "report buckets")
	})

	t.Run("validates sampling ratio", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("profiling requires a server address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_TELEMETRY_PROFILING_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profiling_server_address")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KHATA_APP_ENV", "production")
		t.Setenv("KHATA_DATABASE_PASSWORD", "secure-password")
		t.Setenv("KHATA_DATABASE_SSLMODE", "require")
		t.Setenv("KHATA_SWAGGER_ENABLED", "false")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("KHATA_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("KHATA_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("sqlite needs no password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("KHATA_DATABASE_DRIVER", "sqlite")
		t.Setenv("KHATA_DATABASE_PASSWORD", "")

		_, err := Load()
		require.NoError(t, err)
	})

	t.Run("fails if swagger enabled without IP restriction", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("KHATA_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint")
	})

	t.Run("passes with swagger restricted by IP", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("KHATA_SWAGGER_ENABLED", "true")
		t.Setenv("KHATA_SWAGGER_ALLOWED_IPS", "10.0.0.1")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Swagger.Enabled)
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
		assert.False(t, cfg.Swagger.Enabled)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   DriverPostgres,
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
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   DriverPostgres,
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
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
