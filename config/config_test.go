package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"api_port": "9090",
		"database": "postgres",
		"db_host": "pg",
		"security": {"jwt_secret": "s3cret", "session_hours": 2},
		"stripe": {"price_id": "price_123"},
		"site": {"base_url": "https://example.com/"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", c.ApiPort)
	assert.Equal(t, "postgres", c.Database)
	assert.Equal(t, "pg", c.DbHost)
	assert.Equal(t, "s3cret", c.Security.JwtSecret)
	assert.Equal(t, 2, c.Security.SessionHours)
	assert.Equal(t, "price_123", c.Stripe.PriceID)
	assert.Equal(t, int64(300), c.Stripe.MonthlyFee)
	assert.Equal(t, "https://example.com", c.Site.BaseURL)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.ApiPort)
	assert.Equal(t, "sqlite3", c.Database)
	assert.Equal(t, "CHANGE_ME", c.Security.JwtSecret)
	assert.Equal(t, 24, c.Security.SessionHours)
	assert.Equal(t, 60, c.Redis.HomeTTLSeconds)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("API_PORT", "7070")
	t.Setenv("STRIPE_PRICE_ID", "price_env")

	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "7070", c.ApiPort)
	assert.Equal(t, "price_env", c.Stripe.PriceID)
}
