package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": 9000,
		"database_url": "postgres://file/db",
		"ai_engine_url": "http://engine:8000"
	}`), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL, "env overrides file")
	assert.Equal(t, "http://engine:8000", cfg.AIEngineURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8080, DatabaseURL: "postgres://x"}, false},
		{"missing database", Config{Port: 8080}, true},
		{"bad port", Config{Port: 0, DatabaseURL: "postgres://x"}, true},
		{"bad engine url", Config{Port: 8080, DatabaseURL: "postgres://x", AIEngineURL: "not a url"}, true},
		{"oauth id without secret", Config{Port: 8080, DatabaseURL: "postgres://x", GitHubClientID: "abc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()

	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 48*time.Hour, cfg.TTL)
}

func TestNewJWTConfigMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("hunter2!")
	require.NoError(t, err)

	assert.True(t, cfg.VerifyPassword("hunter2!", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}
