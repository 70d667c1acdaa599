// Package api provides the REST lookup API for the gordap daemon.
// It exposes registration data lookups, lookup history, health, and
// runtime statistics via a Gin-based HTTP server.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/gordap/internal/api/handlers"
	"github.com/jroosing/gordap/internal/api/middleware"
	"github.com/jroosing/gordap/internal/config"
	"github.com/jroosing/gordap/internal/database"
)

// Server is the daemon's REST API server.
//
// Security note: do not expose the API to untrusted networks without an
// API key; every lookup it proxies costs an outbound request.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New assembles the engine, routes, and HTTP server. db may be nil,
// which disables the history endpoints.
func New(cfg *config.Config, lookuper handlers.Lookuper, db *database.DB, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))

	h := handlers.New(lookuper, db, logger)
	RegisterRoutes(engine, h, cfg)

	addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Lookups fan out to registry servers; allow for slow ones.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, httpServer: httpServer}
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
