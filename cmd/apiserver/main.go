// Command apiserver runs the ProfitLeak-Intelligence HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/config"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/cache"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/openai"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/intelligence/sidekick_gpt"
	httpserver "github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file path (empty: environment only)")
	flag.Parse()

	// Local development convenience; absence of a .env file is normal.
	_ = godotenv.Load()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("starting apiserver",
		logging.String("version", version),
		logging.String("commit", gitCommit),
		logging.String("engine_mode", cfg.Engine.Mode),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics()
	}

	var generator analysis.Generator
	if cfg.EngineMode() != analysis.ModeRules {
		backend, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			return err
		}
		var observer sidekick_gpt.ModelObserver
		if m != nil {
			observer = m
		}
		generator, err = sidekick_gpt.NewReportGenerator(backend, &cfg.Engine.Sidekick, logger.Named("sidekick"), observer)
		if err != nil {
			return err
		}
	}

	readyChecks := map[string]handlers.Pinger{}
	var reportCache analysis.ReportCache
	if cfg.Cache.Enabled {
		rc := cache.NewReportCache(
			cache.NewRedisClient(&cfg.Cache),
			cfg.Cache.ParseTTL(),
			logger.Named("cache"),
		)
		reportCache = rc
		readyChecks["cache"] = rc
	}

	service, err := analysis.NewService(cfg.EngineMode(), generator, reportCache, m, logger.Named("analysis"))
	if err != nil {
		return err
	}

	var rateLimit *middleware.RateLimitConfig
	var limiter *middleware.TokenBucketLimiter
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RPS
		rl.BurstSize = cfg.RateLimit.Burst
		rateLimit = &rl
		limiter = middleware.NewTokenBucketLimiter(rl.RequestsPerSecond, rl.BurstSize, rl.CleanupInterval)
		defer limiter.Stop()
	}

	if *configPath != "" {
		config.Watch(*configPath, func(next *config.Config) {
			if limiter != nil && next.RateLimit.Enabled {
				limiter.SetLimits(next.RateLimit.RPS, next.RateLimit.Burst)
			}
			logger.Info("configuration reloaded",
				logging.Float64("rate_limit_rps", next.RateLimit.RPS),
				logging.Int("rate_limit_burst", next.RateLimit.Burst),
			)
		})
	}

	router := httpserver.NewRouter(httpserver.RouterOptions{
		Mode:        cfg.Server.Mode,
		Version:     version,
		Service:     service,
		Logger:      logger,
		Metrics:     m,
		ReadyChecks: readyChecks,
		RateLimit:   rateLimit,
		RateLimiter: limiter,
	})

	server := httpserver.NewServer(httpserver.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

//Personal.AI order the ending
