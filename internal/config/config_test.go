package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.local ,,http://b.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins())
}

func TestAllowedOrigins_Empty(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.AllowedOrigins())
}

func TestLoad_SMTPDefaults(t *testing.T) {
	t.Setenv("ALERT_EMAIL_TO", "stock@example.com, buyer@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Empty(t, cfg.SMTPHost)
	assert.Equal(t, []string{"stock@example.com", "buyer@example.com"}, cfg.AlertRecipients())
}
