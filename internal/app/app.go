package app

import (
	"context"
	"fmt"
	"net"
	"time"

	"command-logger/internal/domain/ports"
)

// HTTPServer is the part of httpapi.Server the lifecycle needs.
type HTTPServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// App manages the lifecycle of the notification relay.
type App struct {
	server          HTTPServer
	logger          ports.Logger
	addr            string
	shutdownTimeout time.Duration
}

// Options controls where the App listens and how long shutdown may take.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// New constructs an App instance.
func New(server HTTPServer, logger ports.Logger, opts Options) *App {
	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &App{
		server:          server,
		logger:          logger,
		addr:            opts.Addr,
		shutdownTimeout: timeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the HTTP server on ln, then shuts it down gracefully once ctx is done.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	a.logger.Info(context.Background(), "http server stopped")
	return nil
}
