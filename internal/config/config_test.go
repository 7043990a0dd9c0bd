package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DATA_PROVIDER", "API_URL", "API_KEY", "BASE_CURRENCY", "QUOTE_CURRENCY",
	"SMTP_SERVER", "SMTP_PORT", "EMAIL_USERNAME", "EMAIL_PASSWORD", "EMAIL_FROM",
	"EMAIL_SUBSCRIBER", "EMAIL_ENABLED", "POINTS", "MOCK_RATE", "REFRESH_CRON",
	"RUN_ON_START", "METRICS_ADDR", "LOG_LEVEL", "LOG_PRETTY", "HTTPS_PROXY",
}

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "exchangerate", cfg.DataSource.Provider)
	assert.Equal(t, "EUR/USD", cfg.Pair())
	assert.Equal(t, DefaultMailHost, cfg.Mail.Server)
	assert.Equal(t, DefaultMailPort, cfg.Mail.Port)
	assert.True(t, cfg.Mail.Enabled)
	assert.Equal(t, DefaultPoints, cfg.Analysis.Points)
	assert.Equal(t, DefaultRefresh, cfg.Schedule.Refresh)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_source:
  provider: yahoo
  base: gbp
  quote: jpy
mail:
  username: bot@example.com
  password: from-file
  recipient: trader@example.com
analysis:
  points: 50
schedule:
  refresh: "@every 5m"
`)
	t.Setenv("EMAIL_PASSWORD", "from-env")
	t.Setenv("POINTS", "150")
	t.Setenv("RUN_ON_START", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "GBP/JPY", cfg.Pair())
	assert.Equal(t, "from-env", cfg.Mail.Password)
	assert.Equal(t, "bot@example.com", cfg.Mail.From, "from defaults to the username")
	assert.Equal(t, 150, cfg.Analysis.Points)
	assert.Equal(t, "@every 5m", cfg.Schedule.Refresh)
	assert.True(t, cfg.Schedule.RunOnStart)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadInput(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "data_source: [unclosed"))
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("POINTS", "many")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "POINTS")
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Mail.Username = "bot@example.com"
	cfg.Mail.From = "bot@example.com"
	cfg.Mail.Password = "secret"
	cfg.Mail.Recipient = "trader@example.com"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "points lower bound", mutate: func(c *Config) { c.Analysis.Points = 10 }},
		{name: "points upper bound", mutate: func(c *Config) { c.Analysis.Points = 200 }},
		{name: "points too low", mutate: func(c *Config) { c.Analysis.Points = 9 }, wantErr: "Points"},
		{name: "points too high", mutate: func(c *Config) { c.Analysis.Points = 201 }, wantErr: "Points"},
		{name: "unknown provider", mutate: func(c *Config) { c.DataSource.Provider = "bloomberg" }, wantErr: "Provider"},
		{name: "bad currency", mutate: func(c *Config) { c.DataSource.Quote = "US" }, wantErr: "Quote"},
		{name: "bad recipient", mutate: func(c *Config) { c.Mail.Recipient = "not-an-email" }, wantErr: "Recipient"},
		{name: "missing recipient", mutate: func(c *Config) { c.Mail.Recipient = "" }, wantErr: "mail.recipient"},
		{name: "missing password", mutate: func(c *Config) { c.Mail.Password = "" }, wantErr: "mail.password"},
		{name: "mail disabled", mutate: func(c *Config) {
			c.Mail.Enabled = false
			c.Mail.Password = ""
			c.Mail.Recipient = ""
		}},
		{name: "mock without rate", mutate: func(c *Config) { c.DataSource.Provider = "mock" }, wantErr: "mock_rate"},
		{name: "mock with rate", mutate: func(c *Config) {
			c.DataSource.Provider = "mock"
			c.DataSource.MockRate = 1.08
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
