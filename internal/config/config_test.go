package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billkerfy/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Billkerfy", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "INV-", cfg.Invoice.NumberPrefix)
	assert.False(t, cfg.Invoice.StrictTransitions)
	assert.Empty(t, cfg.Broker.URL)
	assert.Equal(t, "postgres://postgres:@localhost:5432/billkerfy?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INVOICE_STRICT_TRANSITIONS", "true")
	t.Setenv("INVOICE_NUMBER_PREFIX", "F-")
	t.Setenv("APP_LOCALE", "es-MX")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("DB_NAME", "billing")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Invoice.StrictTransitions)
	assert.Equal(t, "F-", cfg.Invoice.NumberPrefix)
	assert.Equal(t, "es-MX", cfg.App.Locale)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.ConnectionString(), "/billing?")
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := config.Load()
	assert.ErrorContains(t, err, "failed to process config")
}
