package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config contains runtime configuration values.
type Config struct {
	DiscordBotToken string `validate:"required"`
	DiscordAPIBase  string `validate:"required,url"`
	LogChannelID    string `validate:"required"`
	AuthSecret      string
	BotDisplayName  string `validate:"required"`

	Port            int           `validate:"min=1,max=65535"`
	GinMode         string        `validate:"oneof=debug release test"`
	MaxBodyBytes    int64         `validate:"gt=0"`
	MaxConnections  int           `validate:"min=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	MetricsEnabled  bool

	RequestTimeout time.Duration `validate:"gt=0"`
	MaxRetryWait   time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=debug info warn warning error"`
}

const (
	defaultAPIBase         = "https://discord.com/api/v10"
	defaultChannelID       = "1410458084874260592"
	defaultDisplayName     = "CommandLoggerBot"
	defaultPort            = 5000
	defaultGinMode         = "release"
	defaultMaxBodyBytes    = 1 << 20
	defaultMaxConnections  = 0
	defaultShutdownTimeout = 5 * time.Second
	defaultRequestTimeout  = 10 * time.Second
	defaultMaxRetryWait    = 30 * time.Second
	defaultLogLevel        = "info"
)

// Load builds a Config from environment variables with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DiscordBotToken: strings.TrimSpace(v.GetString("DISCORD_BOT_TOKEN")),
		DiscordAPIBase:  strings.TrimRight(v.GetString("DISCORD_API_BASE"), "/"),
		LogChannelID:    v.GetString("LOG_CHANNEL_ID"),
		AuthSecret:      v.GetString("AUTH_SECRET"),
		BotDisplayName:  v.GetString("BOT_DISPLAY_NAME"),
		Port:            v.GetInt("PORT"),
		GinMode:         strings.ToLower(v.GetString("GIN_MODE")),
		MaxBodyBytes:    v.GetInt64("MAX_BODY_BYTES"),
		MaxConnections:  v.GetInt("MAX_CONNECTIONS"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
		RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
		MaxRetryWait:    v.GetDuration("MAX_RETRY_WAIT"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthEnabled reports whether inbound requests must carry the shared secret.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_API_BASE", defaultAPIBase)
	v.SetDefault("LOG_CHANNEL_ID", defaultChannelID)
	v.SetDefault("AUTH_SECRET", "")
	v.SetDefault("BOT_DISPLAY_NAME", defaultDisplayName)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("GIN_MODE", defaultGinMode)
	v.SetDefault("MAX_BODY_BYTES", defaultMaxBodyBytes)
	v.SetDefault("MAX_CONNECTIONS", defaultMaxConnections)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("REQUEST_TIMEOUT", defaultRequestTimeout)
	v.SetDefault("MAX_RETRY_WAIT", defaultMaxRetryWait)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
