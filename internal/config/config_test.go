// AngelaMos | 2026
// config_test.go

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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 30*time.Minute, cfg.Payment.OrderTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Library.TrialPeriod)
	assert.Equal(t, "file", cfg.Client.SessionStore)
	assert.Equal(t, "http://localhost:3000", cfg.Client.APIURL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 8088
client:
  api_url: https://api.example.test
  session_store: memory
payment:
  currency: USD
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("LIBRARY_TRIAL_PERIOD", "72h")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "https://api.example.test", cfg.Client.APIURL)
	assert.Equal(t, "memory", cfg.Client.SessionStore)
	assert.Equal(t, "USD", cfg.Payment.Currency)
	assert.Equal(t, "rzp_test_key", cfg.Payment.KeyID)
	assert.Equal(t, 72*time.Hour, cfg.Library.TrialPeriod)
}

func TestLoadRejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("MMLE_SESSION_STORE", "cookie")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_store")
}

func TestValidateServer(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Database.URL = "postgres://localhost/mmle"
		cfg.Redis.URL = "redis://localhost:6379/0"
		cfg.Payment.KeyID = "rzp_test"
		cfg.Payment.KeySecret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing database",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing razorpay secret",
			mutate:  func(c *Config) { c.Payment.KeySecret = "" },
			wantErr: "RAZORPAY",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *Config) { c.Storage.Driver = "s3" },
			wantErr: "S3_BUCKET",
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowedOrigins = []string{"*"}
			},
			wantErr: "wildcard",
		},
		{
			name: "events without url",
			mutate: func(c *Config) {
				c.Events.Enabled = true
			},
			wantErr: "AMQP_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.ValidateServer()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 3000}
	assert.Equal(t, "0.0.0.0:3000", s.Address())

	s.Host = "::1"
	assert.Equal(t, "[::1]:3000", s.Address())
}

func TestUnknownEnvIgnored(t *testing.T) {
	t.Setenv("SOME_UNRELATED_VAR", "x")
	t.Setenv("PORT", "4100")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.Server.Port)
}
