// Package devserver is a development backend for the bokdeok client. It
// serves the authentication, profile, bookmark and listing endpoints from
// in-memory state so the client can run against a real HTTP peer.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/bokdeok/api/openapi"
	"github.com/donaldgifford/bokdeok/internal/api/handlers"
	mw "github.com/donaldgifford/bokdeok/internal/api/middleware"
	"github.com/donaldgifford/bokdeok/internal/config"
)

// Version is reported in the OpenAPI document.
var Version = "dev"

const serviceName = "bokdeok-devserver"

// Server wraps the echo instance serving a Backend.
type Server struct {
	echo *echo.Echo
	api  huma.API
	cfg  config.DevServerConfig
	log  *slog.Logger
}

// New builds the server and registers every route.
func New(cfg config.DevServerConfig, backend handlers.Backend, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Recovery(log))
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(serviceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	health := handlers.NewHealthHandler(backend)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	const title = "bokdeok development API"
	api := humaecho.New(e, huma.DefaultConfig(title, Version))
	openapi.RegisterRoutes(e, title, "/openapi.json")
	handlers.RegisterAuthRoutes(api, handlers.NewAuthHandler(backend, cfg.ProfileLookup))
	handlers.RegisterScrapRoutes(api, handlers.NewScrapHandler(backend))
	handlers.RegisterEstateRoutes(api, handlers.NewEstateHandler(backend))

	return &Server{echo: e, api: api, cfg: cfg, log: log}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// OpenAPI returns the generated OpenAPI document.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.api.OpenAPI()
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
}

// Start listens on the configured address and blocks until the server
// stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.echo,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.log.Info("starting server", "addr", srv.Addr, "profile_lookup", s.cfg.ProfileLookup)
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
