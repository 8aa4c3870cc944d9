package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DATABASE_URL", "COGNIWISE_DB", "PORT", "CORS_ORIGINS", "REDIS_ADDR", "LOG_LEVEL", "LOG_FORMAT",
	"SECRET_KEY", "ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_TOKEN_EXPIRES_IN",
	"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SAMPLER_RATIO", "OTEL_EXPORTER_OTLP_HEADERS",
	"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "COGNIWISE_LLM_PROVIDER",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, DefaultAdminEmail, cfg.Auth.Email)
	assert.Equal(t, DefaultTokenTTL, cfg.Auth.TTL)
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, "", cfg.LLM.Provider)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COGNIWISE_DB", "/tmp/fallback.db")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ADMIN_TOKEN_EXPIRES_IN", "60")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fallback.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.Auth.TTL)
	assert.True(t, cfg.OTel.Enabled)
	assert.Equal(t, 0.5, cfg.OTel.SampleRatio)
	assert.Equal(t, "gemini", cfg.LLM.Provider)

	t.Setenv("DATABASE_URL", "postgres://db/cogniwise")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://db/cogniwise", cfg.DatabaseURL)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_TOKEN_EXPIRES_IN", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nADMIN_EMAIL=ops@cogniwise.ai\n"), 0o600))
	t.Setenv("ADMIN_EMAIL", "kept@cogniwise.ai")
	t.Cleanup(func() { os.Unsetenv("PORT") })
	// godotenv only fills variables that are absent.
	os.Unsetenv("PORT")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "9000", os.Getenv("PORT"))
	assert.Equal(t, "kept@cogniwise.ai", os.Getenv("ADMIN_EMAIL"))

	assert.Error(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
