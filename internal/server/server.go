// Package server provides HTTP server setup and configuration.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/hello-function/internal/config"
	"github.com/sebasr/hello-function/internal/handlers"
	"github.com/sebasr/hello-function/internal/middleware"
)

// HealthPath is the liveness endpoint
const HealthPath = "/api/v1/health"

// Version is reported by the health endpoint
const Version = "1.0.0"

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config *config.Config
	Logger *logrus.Logger
	// Registry receives the request metrics. A fresh registry is created when nil.
	Registry *prometheus.Registry
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	// Set Gin to release mode to disable ANSI colors in logs
	gin.SetMode(gin.ReleaseMode)

	// gin.Default() would add its colored logger; request logging goes through logrus instead
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger, HealthPath))

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = deps.Registry
		if registry == nil {
			registry = prometheus.NewRegistry()
		}
		metrics, err := middleware.NewMetrics(registry)
		if err != nil {
			return nil, err
		}
		router.Use(metrics.Middleware())
	}

	// Add CORS middleware for browser clients
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Encoding", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	// Operational routes are rate limited. The function routes are not: the
	// Functions host forwards every caller from loopback, and a greeting is
	// always answered with 200.
	opsRateLimiter := middleware.NewRateLimitMiddleware(cfg.RateLimit.Limit, cfg.RateLimit.Period)
	router.GET(HealthPath, opsRateLimiter, handlers.HealthHandler(Version))
	if registry != nil {
		router.GET(cfg.Metrics.Path, opsRateLimiter, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	// Forwarded HTTP trigger, any method
	router.Any(cfg.Server.HTTPTriggerPath(), handlers.HelloWorldHandler(deps.Logger))

	// Custom handler invocation protocol. Without a route prefix both modes
	// share one path and the forwarded handler owns it.
	if cfg.Server.InvokePath() != cfg.Server.HTTPTriggerPath() {
		router.POST(cfg.Server.InvokePath(), handlers.InvokeHandler(deps.Logger))
	}

	return router, nil
}
