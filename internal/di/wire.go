//go:build wireinject

package di

import (
	"github.com/google/wire"

	"command-logger/internal/adapter/httpapi"
	"command-logger/internal/adapter/logging"
	"command-logger/internal/adapter/metrics"
	"command-logger/internal/app"
	"command-logger/internal/config"
	"command-logger/internal/domain/ports"
	"command-logger/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		metrics.NewCollector,
		wire.Bind(new(ports.Metrics), new(*metrics.Collector)),
		wire.Bind(new(httpapi.MetricsExporter), new(*metrics.Collector)),
		provideNotifier,
		provideCommandLogConfig,
		usecase.NewCommandLog,
		wire.Bind(new(httpapi.CommandNotifier), new(*usecase.CommandLog)),
		provideServerConfig,
		httpapi.NewHandler,
		httpapi.NewServer,
		wire.Bind(new(app.HTTPServer), new(*httpapi.Server)),
		provideAppOptions,
		app.New,
	)
	return nil, nil
}
