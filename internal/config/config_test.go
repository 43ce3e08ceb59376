package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://www.pamec.com.co", cfg.QRDefaultData)
	assert.Equal(t, 1024, cfg.QRMaxBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("QUALITY_ALERT_EMAIL", "calidad@planta.test")
	t.Setenv("PUBLIC_BASE_URL", "https://trazas.test/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "calidad@planta.test", cfg.QualityAlertEmail)
	assert.Equal(t, "https://trazas.test", cfg.PublicBaseURL)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://a.test, ,https://b.test "}
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins())
}
