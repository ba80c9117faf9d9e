// Package service exposes the agent over HTTP. The surface is thin: all
// conversation semantics live in the agent runner; handlers only shape
// requests and responses.
package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/tripflow/tripflow/internal/app/agent"
	"github.com/tripflow/tripflow/internal/core/reduce"
)

// Server represents the API server.
type Server struct {
	echo   *echo.Echo
	addr   string
	runner *agent.Runner
	log    zerolog.Logger

	validate *validator.Validate

	// data holds the payloads deposited by the most recent chat turn,
	// serving the data endpoints until the next turn replaces it.
	mu   sync.RWMutex
	data map[string]map[string]reduce.Payload
}

// NewServer creates a new API server over the given runner.
func NewServer(addr string, runner *agent.Runner, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		addr:     addr,
		runner:   runner,
		log:      log,
		validate: validator.New(),
		data:     emptyData(),
	}
	s.setupRoutes()
	return s
}

func emptyData() map[string]map[string]reduce.Payload {
	return map[string]map[string]reduce.Payload{
		string(reduce.DataFlights): {},
		string(reduce.DataHotels):  {},
		string(reduce.DataNews):    {},
	}
}

// setupRoutes configures all API endpoints.
func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(http.HandlerFunc(promMetricsHandler)))

	v1 := s.echo.Group("/api/v1")

	v1.POST("/chat", s.chat)
	v1.GET("/chat/history/:thread_id", s.history)
	v1.DELETE("/chat/clear-data", s.clearData)

	v1.GET("/data/keys/:data_type", s.listKeys)
	v1.GET("/data/:data_type/:key", s.getData)
}

// Start begins serving. It blocks until Shutdown is called or the
// listener fails.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.addr).Msg("starting server")
	return s.echo.Start(s.addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
