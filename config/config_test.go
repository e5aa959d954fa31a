package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "websocket", cfg.ServerType)
	assert.Equal(t, 8, cfg.HistoryTurns)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("SERVER_TYPE", "both")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HISTORY_TURNS", "4")
	t.Setenv("REDIS_URL", "none")
	t.Setenv("SESSION_TIMEOUT", "5")
	t.Setenv("ALLOWED_ORIGINS", "http://a,http://b")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "both", cfg.ServerType)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 4, cfg.HistoryTurns)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "PORT", "eighty"},
		{"bad server type", "SERVER_TYPE", "grpc"},
		{"zero history", "HISTORY_TURNS", "0"},
		{"bad timeout", "GEMINI_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "k")
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
