package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/api/types"
	"github.com/killallgit/cardsheet-api/internal/metrics"
	"github.com/killallgit/cardsheet-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	limiters   *clientLimiters

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		engine:   engine,
		config:   cfg,
		limiters: newClientLimiters(),
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        engine,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.ReadTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil {
		return fmt.Errorf("server dependencies not set")
	}
	if s.dependencies.Config == nil {
		s.dependencies.Config = s.config
	}

	s.setupMiddleware()
	return RegisterRoutes(s.engine, s.dependencies, s.limiters)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(RequestLogger(s.dependencies.Log()))
	s.engine.Use(metrics.Middleware())

	if s.config.Security.EnableCORS {
		s.engine.Use(CORS(s.config.Security.CORSOrigins))
	}

	maxBody := s.config.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	s.engine.Use(RequestSizeLimit(maxBody))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.dependencies.Log().Info("http server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiters.Stop()
	return s.httpServer.Shutdown(ctx)
}
