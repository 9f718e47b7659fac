package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ridwanfathin/gst-invoice-service/internal/config"
	"github.com/ridwanfathin/gst-invoice-service/internal/metrics"
	"github.com/ridwanfathin/gst-invoice-service/internal/middleware"
)

// RouteRegistrar is implemented by handlers that mount routes under /v1
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Options carries the collaborators the server needs besides config
type Options struct {
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Handlers []RouteRegistrar
}

// Server represents the HTTP server for the invoice service
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	rateLimiter *middleware.ClientRateLimiter
	config      *config.Config
	logger      zerolog.Logger
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, opts Options) *Server {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RequestResponseLogger(middleware.LoggerConfig{
		Logger:    opts.Logger,
		LogBodies: cfg.LogBodies,
	}))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}

	server := &Server{
		router: router,
		config: cfg,
		logger: opts.Logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	if cfg.RateLimitRPS > 0 {
		server.rateLimiter = middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			BurstSize:         cfg.RateLimitBurst,
		})
	}

	server.setupRoutes(opts)

	return server
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes(opts Options) {
	// Health check endpoint
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	if opts.Gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// API documentation endpoints
	// Access the Swagger UI at http://localhost:8080/api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)

	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	v1 := s.router.Group("/v1")
	if s.rateLimiter != nil {
		v1.Use(s.rateLimiter.Middleware())
	}
	for _, h := range opts.Handlers {
		h.RegisterRoutes(v1)
	}
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		s.logger.Info().Int("port", s.config.Port).Msg("server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info().Msg("server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}
