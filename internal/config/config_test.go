package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PPSWITCH_PRIMARY__ENV", "test")
	t.Setenv("PPSWITCH_GATEWAY__BASE_URL", "http://127.0.0.1:3000")
	t.Setenv("PPSWITCH_GATEWAY__CONN_TIMEOUT", "5s")
	t.Setenv("PPSWITCH_SWITCH__RETURN_URL_SCHEME", "com.merchant.app.payments")
	t.Setenv("PPSWITCH_SWITCH__BUNDLE_ID", "com.merchant.app")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PPSWITCH_GATEWAY__TOKENIZATION_KEY", "sandbox_abc")
	t.Setenv("PPSWITCH_SWITCH__DISABLE_AUTH_SESSION", "true")
	t.Setenv("PPSWITCH_LOGGER__LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.Gateway.BaseURL)
	assert.Equal(t, "sandbox_abc", cfg.Gateway.TokenizationKey)
	assert.Equal(t, "com.merchant.app.payments", cfg.Switch.ReturnURLScheme)
	assert.Equal(t, "com.merchant.app", cfg.Switch.BundleID)
	assert.True(t, cfg.Switch.DisableAuthSession)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_MissingRequiredField(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PPSWITCH_SWITCH__BUNDLE_ID", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := LoggerConfig{Level: "noisy"}.NewLogger()
	assert.NotNil(t, logger)
}
