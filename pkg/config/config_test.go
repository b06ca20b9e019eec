package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 5*time.Minute, c.MarketData.CacheTTL)
	assert.Equal(t, 60*time.Second, c.MarketData.RateWindow)
	assert.Equal(t, 5, c.MarketData.RateCeiling)
	assert.Equal(t, 30*time.Minute, c.Session.TTL)
	assert.Equal(t, 3, c.AI.MaxAttempts)
	assert.Equal(t, 30*time.Second, c.AI.Timeout)
	assert.Equal(t, 2000, c.AI.MaxTokens)
	assert.InDelta(t, 0.7, c.AI.Temperature, 1e-9)
	assert.Zero(t, c.MarketData.Timeout)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
market_data:
  api_key: from-file
  rate_ceiling: 2
session:
  ttl: 10m
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "from-file", c.MarketData.APIKey)
	assert.Equal(t, 2, c.MarketData.RateCeiling)
	assert.Equal(t, 10*time.Minute, c.Session.TTL)
	assert.Equal(t, 5*time.Minute, c.MarketData.CacheTTL)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "market_data:\n  api_key: from-file\n")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")
	t.Setenv("ADMIN_CODE", "secret-admin")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.MarketData.APIKey)
	assert.Equal(t, "secret-admin", c.Session.AdminCode)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Events.Brokers)
}

func TestValidateRequiresMarketDataKey(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market_data.api_key")
}

func TestValidateRequiresBrokersWhenEventsEnabled(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	c.MarketData.APIKey = "k"
	c.Events.Enabled = true

	require.Error(t, c.Validate())

	c.Events.Brokers = []string{"localhost:9092"}
	require.NoError(t, c.Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
}
