package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "test-secret-with-enough-length-000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 96*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 20, cfg.RateLimit.Max)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("AUTH_TOKEN_TTL", "30m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SECRET")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")

	t.Run("port", func(t *testing.T) {
		t.Setenv("DB_PORT", "abc")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("ttl", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_TTL", "four days")
		_, err := Load()
		assert.Error(t, err)
	})

	for _, key := range []string{"REDIS_DB", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SECONDS"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "2O")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "imdb", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=imdb sslmode=disable", d.DSN())

	d.SSLRootCert = "/certs/ca.pem"
	assert.Contains(t, d.DSN(), "sslrootcert=/certs/ca.pem")
}
