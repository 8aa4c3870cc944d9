package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := Wrap(zap.New(core))

	log.Info("login",
		"email", "admin@cogniwise.ai",
		"password", "Admin@123",
		"GEMINI_API_KEY", "abc",
		"header", "eyJhbGciOiJIUzI1NiJ9.eyJyb2xlIjoiYWRtaW4ifQ.sig",
		"payload", map[string]any{"admin_token": "x", "age": 7},
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "admin@cogniwise.ai", fields["email"])
	assert.Equal(t, redacted, fields["password"])
	assert.Equal(t, redacted, fields["GEMINI_API_KEY"])
	assert.Equal(t, redacted, fields["header"])
	assert.Equal(t, map[string]any{"admin_token": redacted, "age": 7}, fields["payload"])
}

func TestWithKeepsRedacting(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := Wrap(zap.New(core)).With("secret_key", "s3cr3t")

	log.Debug("hidden")
	log.Warn("visible")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "visible", entry.Message)
	assert.Equal(t, redacted, entry.ContextMap()["secret_key"])
}

func TestNewLevels(t *testing.T) {
	l, err := New("warn", "json")
	require.NoError(t, err)
	assert.False(t, l.Zap().Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Zap().Core().Enabled(zap.WarnLevel))

	l, err = New("nonsense", "console")
	require.NoError(t, err)
	assert.True(t, l.Zap().Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Zap().Core().Enabled(zap.DebugLevel))
}
