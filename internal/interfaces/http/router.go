// Package http assembles the API server: the gin router, its middleware
// chain, and the lifecycle wrapper around net/http.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http/middleware"
)

// RouterOptions carries everything the router needs.
type RouterOptions struct {
	Mode    string // gin mode: "debug" | "release" | "test"
	Version string

	Service *analysis.Service
	Logger  logging.Logger
	Metrics *metrics.Metrics

	// ReadyChecks are the dependencies behind /readyz.
	ReadyChecks map[string]handlers.Pinger

	// RateLimit enables the token-bucket limiter when non-nil.
	RateLimit *middleware.RateLimitConfig

	// RateLimiter optionally supplies an externally owned limiter, so the
	// caller can retune it at runtime.  Nil constructs a private one.
	RateLimiter *middleware.TokenBucketLimiter
}

// NewRouter builds the full gin engine.
func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RequestLogging(opts.Logger))
	if opts.Metrics != nil {
		engine.Use(middleware.Metrics(opts.Metrics))
	}
	if opts.RateLimit != nil {
		limiter := opts.RateLimiter
		if limiter == nil {
			limiter = middleware.NewTokenBucketLimiter(
				opts.RateLimit.RequestsPerSecond,
				opts.RateLimit.BurstSize,
				opts.RateLimit.CleanupInterval,
			)
		}
		engine.Use(middleware.RateLimit(limiter, *opts.RateLimit))
	}

	health := handlers.NewHealthHandler(opts.Version, opts.ReadyChecks)
	engine.GET("/healthz", health.Healthz)
	engine.GET("/readyz", health.Readyz)
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	analyze := handlers.NewAnalyzeHandler(opts.Service, opts.Logger)
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/assessments/analyze", analyze.Analyze)
	}

	return engine
}

//Personal.AI order the ending
