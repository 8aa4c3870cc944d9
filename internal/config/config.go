// Package config loads service settings from a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cogniwise/cogniwise/internal/auth"
	"github.com/cogniwise/cogniwise/internal/llm"
	"github.com/cogniwise/cogniwise/internal/observability"
)

// Defaults for a local development server.
const (
	DefaultPort          = "5000"
	DefaultSecret        = "cogniwise-secret-key"
	DefaultAdminEmail    = "admin@cogniwise.ai"
	DefaultAdminPassword = "Admin@123"
	DefaultTokenTTL      = 8 * time.Hour
)

// Config is the full service configuration.
type Config struct {
	// DatabaseURL is a postgres DSN or a sqlite path. Empty means the
	// default sqlite location.
	DatabaseURL string
	Port        string
	CORSOrigins []string
	RedisAddr   string
	LogLevel    string
	LogFormat   string

	Auth auth.Config
	OTel observability.Config
	LLM  llm.Config
}

// LoadEnv reads path into the process environment without overriding
// variables that are already set. An empty path means ./.env, and a
// missing default file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from the environment.
func Load() (Config, error) {
	ttl := DefaultTokenTTL
	if raw := GetEnv("ADMIN_TOKEN_EXPIRES_IN"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("ADMIN_TOKEN_EXPIRES_IN must be a positive number of seconds, got %q", raw)
		}
		ttl = time.Duration(secs) * time.Second
	}

	ratio := 0.0
	if raw := GetEnv("OTEL_SAMPLER_RATIO"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("OTEL_SAMPLER_RATIO: %w", err)
		}
		ratio = f
	}

	cfg := Config{
		DatabaseURL: GetEnv("DATABASE_URL", GetEnv("COGNIWISE_DB")),
		Port:        GetEnv("PORT", DefaultPort),
		CORSOrigins: splitList(GetEnv("CORS_ORIGINS", "*")),
		RedisAddr:   GetEnv("REDIS_ADDR"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFormat:   GetEnv("LOG_FORMAT", "json"),
		Auth: auth.Config{
			Secret:   GetEnv("SECRET_KEY", DefaultSecret),
			Email:    GetEnv("ADMIN_EMAIL", DefaultAdminEmail),
			Password: GetEnv("ADMIN_PASSWORD", DefaultAdminPassword),
			TTL:      ttl,
		},
		OTel: observability.Config{
			Enabled:     isTrue(GetEnv("OTEL_ENABLED")),
			ServiceName: GetEnv("OTEL_SERVICE_NAME", "cogniwise"),
			Environment: GetEnv("APP_ENV", "development"),
			Endpoint:    GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Headers:     observability.ParseHeaders(GetEnv("OTEL_EXPORTER_OTLP_HEADERS")),
			Insecure:    isTrue(GetEnv("OTEL_EXPORTER_OTLP_INSECURE")),
			SampleRatio: ratio,
		},
		LLM: llm.ConfigFromEnv(),
	}
	return cfg, nil
}

// GetEnv returns the trimmed value of key, or the first default when the
// variable is unset or blank.
func GetEnv(key string, defaultValue ...string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
