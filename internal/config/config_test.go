package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"budget-app-go/pkg/logger"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "json")
}

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("BUDGET_APP_SECRET_KEY", "")

	_, err := Load(testLogger())
	require.ErrorIs(t, err, ErrMissingSecretKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BUDGET_APP_SECRET_KEY", "test-secret")
	t.Setenv("BUDGET_APP_ALGORITHM", "")
	t.Setenv("BUDGET_APP_ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load(testLogger())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "HS256", cfg.Security.Algorithm)
	require.Equal(t, time.Hour, cfg.Security.TokenTTL)
	require.Equal(t, "test-secret", cfg.Security.SecretKey)
}

func TestLoadRejectsNonPositiveTokenTTL(t *testing.T) {
	t.Setenv("BUDGET_APP_SECRET_KEY", "test-secret")
	t.Setenv("BUDGET_APP_ACCESS_TOKEN_EXPIRE_MINUTES", "-5")

	_, err := Load(testLogger())
	require.Error(t, err)
}

func TestDBConfigDSNOverride(t *testing.T) {
	cfg := DBConfig{DSN: "host=somewhere user=app dbname=x"}
	require.Equal(t, "host=somewhere user=app dbname=x", cfg.GetDSN())

	discrete := DBConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "postgres", Name: "budget_app", SSLMode: "disable", TimeZone: "UTC",
	}
	require.Contains(t, discrete.GetDSN(), "host=localhost")
	require.Contains(t, discrete.GetDSN(), "dbname=budget_app")
}
