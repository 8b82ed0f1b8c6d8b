package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	server *http.Server
	config ServerConfig
	log    *zap.Logger
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         8501,
		Timeout:      15 * time.Second,
		MaxBodyBytes: 64 << 10,
	}
}

// withDefaults fills zero fields from DefaultServerConfig.
func (c ServerConfig) withDefaults() ServerConfig {
	d := DefaultServerConfig()
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	return c
}

// Deps are the collaborators the routes need.
type Deps struct {
	Predictor Predictor
	Logger    *zap.Logger
	Metrics   *Metrics
	Gatherer  prometheus.Gatherer
}

func NewServer(config ServerConfig, deps Deps) *Server {
	config = config.withDefaults()
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           NewRouter(config, deps),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       config.Timeout,
			WriteTimeout:      config.Timeout + 5*time.Second,
			IdleTimeout:       120 * time.Second,
		},
		config: config,
		log:    deps.Logger,
	}
}

// NewRouter builds the middleware chain and mounts every route.
func NewRouter(config ServerConfig, deps Deps) http.Handler {
	config = config.withDefaults()
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(Chain(
		RecoveryMiddleware(log),
		RequestIDMiddleware,
		LoggerMiddleware(log, deps.Metrics),
		SecurityHeadersMiddleware,
		TimeoutMiddleware(config.Timeout),
		RequestSizeMiddleware(config.MaxBodyBytes),
	))

	h := NewHandler(deps.Predictor, log, deps.Metrics)
	h.Register(r)

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("starting http server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down http server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}
