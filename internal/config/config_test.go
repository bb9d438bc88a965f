package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("JWT_SECRET", "unit-test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "simple-blog", cfg.MongoDB)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.LoginRatePerSecond)
	assert.Equal(t, 10, cfg.LoginRateBurst)
}

func TestLoadRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing mongo url", "MONGO_URL"},
		{"missing redis url", "REDIS_URL"},
		{"missing jwt secret", "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadProductionSecretLength(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-production-grade-secret-of-32+-chars!!")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad token ttl", "TOKEN_TTL", "not-a-duration"},
		{"negative token ttl", "TOKEN_TTL", "-1h"},
		{"bad bcrypt cost", "BCRYPT_COST", "ninety"},
		{"bcrypt cost out of range", "BCRYPT_COST", "99"},
		{"bad login rate", "LOGIN_RATE_PER_SECOND", "0"},
		{"bad login burst", "LOGIN_RATE_BURST", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
}
