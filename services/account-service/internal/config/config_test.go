package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(environment map[string]string) (*AccountServiceConfig, error) {
	return LoadWithOptions(env.Options{Environment: environment})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(map[string]string{"JWT_SECRET": "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "account-service", cfg.ServiceName)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Empty(t, cfg.HTTP.GRPCHealthAddr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "accounts", cfg.Store.MongoDatabase)
	assert.Equal(t, 30*time.Minute, cfg.Token.ExpiresIn)
	assert.False(t, cfg.Mailer.Enabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(map[string]string{
		"JWT_SECRET":              "s3cret",
		"APP_ENV":                 "production",
		"STORE_DRIVER":            "memory",
		"ACCESS_TOKEN_EXPIRES_IN": "5m",
		"CORS_ALLOWED_ORIGINS":    "https://app.example.com",
		"SMTP_HOST":               "smtp.example.com",
		"SMTP_FROM":               "noreply@example.com",
	})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Token.ExpiresIn)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Mailer.Enabled())
	assert.Equal(t, 587, cfg.Mailer.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_SECRET": "k", "STORE_DRIVER": "firestore"}},
		{"non-positive ttl", map[string]string{"JWT_SECRET": "k", "ACCESS_TOKEN_EXPIRES_IN": "0s"}},
		{"bad duration", map[string]string{"JWT_SECRET": "k", "ACCESS_TOKEN_EXPIRES_IN": "soon"}},
		{"smtp without from", map[string]string{"JWT_SECRET": "k", "SMTP_HOST": "smtp.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.env)
			assert.Error(t, err)
		})
	}
}
