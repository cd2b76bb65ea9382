package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"

	"command-logger/internal/domain/ports"
)

// Config controls the HTTP surface.
type Config struct {
	Mode           string
	AuthSecret     string
	MaxBodyBytes   int64
	MaxConnections int
	MetricsEnabled bool
}

// MetricsExporter records request metrics and serves them.
type MetricsExporter interface {
	RequestObserver
	Handler() http.Handler
}

// Server is the gin-backed HTTP server of the service.
type Server struct {
	engine *gin.Engine
	config Config
	logger ports.Logger
	server *http.Server
}

// NewServer builds the router. exporter may be nil, which also disables /metrics.
func NewServer(cfg Config, handler *Handler, exporter MetricsExporter, logger ports.Logger) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	if exporter != nil {
		engine.Use(Metrics(exporter))
	}
	engine.Use(Recovery(logger))

	engine.GET("/", handler.Health)
	engine.POST("/notify", RequireBearer(cfg.AuthSecret), handler.Notify)
	if cfg.MetricsEnabled && exporter != nil {
		engine.GET("/metrics", gin.WrapH(exporter.Handler()))
	}

	return &Server{
		engine: engine,
		config: cfg,
		logger: logger,
		server: &http.Server{
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	if s.config.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.config.MaxConnections)
	}

	s.logger.Info(context.Background(), "http server listening",
		"addr", ln.Addr().String(),
		"auth", s.config.AuthSecret != "",
		"max_connections", s.config.MaxConnections,
	)
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
