package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Gateway   GatewayConfig   `koanf:"gateway"`
	Switch    SwitchConfig    `koanf:"switch"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logger    LoggerConfig    `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// GatewayConfig holds the connection settings for the tokenization backend.
type GatewayConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required"`
	TokenizationKey string        `koanf:"tokenization_key"`
	ConnTimeout     time.Duration `koanf:"conn_timeout" validate:"required"`
}

// SwitchConfig describes how the host application receives browser-switch
// returns: the callback URL scheme registered by the app and the bundle
// identifier the scheme must belong to.
type SwitchConfig struct {
	ReturnURLScheme    string `koanf:"return_url_scheme" validate:"required"`
	BundleID           string `koanf:"bundle_id" validate:"required"`
	DisableAuthSession bool   `koanf:"disable_auth_session"`
	Integration        string `koanf:"integration"`
	Source             string `koanf:"source"`
}

type AnalyticsConfig struct {
	FlushInterval time.Duration `koanf:"flush_interval"`
	BufferSize    int           `koanf:"buffer_size"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

// NewLogger builds the process logger from the configured level. Unknown
// levels fall back to info.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("PPSWITCH_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "PPSWITCH_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
