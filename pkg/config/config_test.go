package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldguard-app/backend/pkg/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *config.Config {
	return &config.Config{
		Port:          "8080",
		Env:           "development",
		DatabaseURL:   "postgres://localhost:5432/goldguard",
		JWTSecret:     testSecret,
		TokenTTL:      24 * time.Hour,
		LedgerBackend: config.BackendPostgres,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid postgres backend",
			mutate: func(c *config.Config) {},
		},
		{
			name:   "valid redis backend",
			mutate: func(c *config.Config) { c.LedgerBackend = config.BackendRedis },
		},
		{
			name:    "missing database URL",
			mutate:  func(c *config.Config) { c.DatabaseURL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing JWT secret",
			mutate:  func(c *config.Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "short JWT secret",
			mutate:  func(c *config.Config) { c.JWTSecret = "too-short" },
			wantErr: "at least 32 characters",
		},
		{
			name:    "unknown ledger backend",
			mutate:  func(c *config.Config) { c.LedgerBackend = "sqlite" },
			wantErr: "LEDGER_BACKEND",
		},
		{
			name:    "non-positive token TTL",
			mutate:  func(c *config.Config) { c.TokenTTL = 0 },
			wantErr: "TOKEN_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/goldguard")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, config.BackendPostgres, cfg.LedgerBackend)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/goldguard")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ENV", "production")
	t.Setenv("LEDGER_BACKEND", "redis")
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, config.BackendRedis, cfg.LedgerBackend)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
