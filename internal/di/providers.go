package di

import (
	"fmt"
	"log/slog"
	"os"

	"command-logger/internal/adapter/discord"
	"command-logger/internal/adapter/httpapi"
	"command-logger/internal/adapter/logging"
	"command-logger/internal/app"
	"command-logger/internal/config"
	"command-logger/internal/domain/ports"
	"command-logger/internal/usecase"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

func provideNotifier(cfg *config.Config, logger ports.Logger, m ports.Metrics) ports.Notifier {
	return discord.NewClient(discord.Options{
		APIBase:      cfg.DiscordAPIBase,
		Token:        cfg.DiscordBotToken,
		ChannelID:    cfg.LogChannelID,
		Timeout:      cfg.RequestTimeout,
		MaxRetryWait: cfg.MaxRetryWait,
	}, logger, m)
}

func provideCommandLogConfig(cfg *config.Config) usecase.CommandLogConfig {
	return usecase.CommandLogConfig{
		DisplayName: cfg.BotDisplayName,
	}
}

func provideServerConfig(cfg *config.Config) httpapi.Config {
	return httpapi.Config{
		Mode:           cfg.GinMode,
		AuthSecret:     cfg.AuthSecret,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MaxConnections: cfg.MaxConnections,
		MetricsEnabled: cfg.MetricsEnabled,
	}
}

func provideAppOptions(cfg *config.Config) app.Options {
	return app.Options{
		Addr:            fmt.Sprintf(":%d", cfg.Port),
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
}
