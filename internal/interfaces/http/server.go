// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
)

const maxRequestBody = 1 << 20

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Dependencies are the collaborators the server is assembled from
type Dependencies struct {
	Handlers     *routes.Handlers
	Tokens       middleware.TokenValidator
	RateCounter  middleware.RateCounter
	HealthChecks map[string]HealthChecker
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	gin        *gin.Engine
	httpServer *http.Server
	deps       Dependencies
	logger     *logrus.Logger
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance with its routes registered
func NewServer(cfg *config.Config, deps Dependencies, logger *logrus.Logger) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    cfg,
		gin:       gin.New(),
		deps:      deps,
		logger:    logger,
		startedAt: time.Now(),
	}

	var proxies []string
	if len(cfg.Security.TrustedProxies) > 0 {
		proxies = cfg.Security.TrustedProxies
	}
	if err := s.gin.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Infof("🚀 HTTP Server starting on port %s", s.config.Server.Port)
	s.logger.Infof("🌐 API Base URL: http://localhost:%s/api", s.config.Server.Port)
	s.logger.Infof("📊 Health Check: http://localhost:%s/health", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	if s.deps.RateCounter != nil {
		s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.deps.RateCounter, s.logger))
	}
	s.gin.Use(middleware.RequestSizeLimit(maxRequestBody))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)

	api := s.gin.Group("/api")
	api.Use(middleware.GuestIdentity(s.deps.Tokens, s.config.App.DefaultUserID))

	routes.SetupRoutes(api, s.deps.Handlers)

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":     s.config.App.Name + " API",
			"version":     s.config.App.Version,
			"environment": s.config.App.Environment,
		})
	})
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.deps.HealthChecks))
	for name := range s.deps.HealthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.deps.HealthChecks[name].Health(ctx); err != nil {
			s.logger.WithError(err).WithField("dependency", name).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  name + " ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(s.startedAt).Round(time.Second).String(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}
