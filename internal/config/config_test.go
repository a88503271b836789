package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_USER", "admin@example.com")
	t.Setenv("ADMIN_PASS", "hunter2")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "https://www.sellmypostoffice.com", cfg.SiteBaseURL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "reports@sellmypostoffice.com", cfg.FromEmail)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoadFailsWithoutAdminCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_USER")
	assert.Contains(t, err.Error(), "ADMIN_PASS")
	assert.NotContains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsBadMailPort(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadProductionFlag(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
