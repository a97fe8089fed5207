// Package config defines all configuration structures for the
// ProfitLeak-Intelligence platform.  No I/O or parsing logic lives here,
// only plain data types, defaults, and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/cache"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/openai"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/intelligence/sidekick_gpt"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EngineConfig selects the analysis path and its generative tunables.
type EngineConfig struct {
	// Mode is "rules", "gpt" or "auto".
	Mode     string                      `mapstructure:"mode"`
	Sidekick sidekick_gpt.SidekickConfig `mapstructure:"sidekick"`
}

// RateLimitConfig holds the token-bucket parameters of the API.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration of every binary in this repository.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Log       logging.LogConfig `mapstructure:"log"`
	Engine    EngineConfig      `mapstructure:"engine"`
	OpenAI    openai.Config     `mapstructure:"openai"`
	Cache     cache.Config      `mapstructure:"cache"`
	RateLimit RateLimitConfig   `mapstructure:"rate_limit"`
	Metrics   MetricsConfig     `mapstructure:"metrics"`
}

// ApplyDefaults fills every unset field with its production default.  It is
// idempotent and never overwrites an explicitly configured value.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Engine.Mode == "" {
		cfg.Engine.Mode = string(analysis.ModeAuto)
	}
	def := sidekick_gpt.NewSidekickConfig()
	if cfg.Engine.Sidekick.ModelID == "" {
		cfg.Engine.Sidekick.ModelID = def.ModelID
	}
	// Nil means unset; an explicit temperature of 0 stays 0.
	if cfg.Engine.Sidekick.Temperature == nil {
		cfg.Engine.Sidekick.Temperature = def.Temperature
	}
	if cfg.Engine.Sidekick.MaxOutputTokens == 0 {
		cfg.Engine.Sidekick.MaxOutputTokens = def.MaxOutputTokens
	}
	if cfg.Engine.Sidekick.TimeoutMs == 0 {
		cfg.Engine.Sidekick.TimeoutMs = def.TimeoutMs
	}

	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = openai.DefaultBaseURL
	}

	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = "localhost:6379"
	}

	if cfg.RateLimit.RPS == 0 {
		cfg.RateLimit.RPS = 10
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 20
	}
}

// Validate checks cross-field consistency after defaults are applied.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}

	mode := analysis.EngineMode(c.Engine.Mode)
	if !mode.IsValid() {
		return fmt.Errorf("engine.mode %q must be rules, gpt or auto", c.Engine.Mode)
	}
	if err := c.Engine.Sidekick.Validate(); err != nil {
		return fmt.Errorf("engine.sidekick: %w", err)
	}

	// The rule-only engine needs no model credentials; everything else does.
	if mode != analysis.ModeRules && c.OpenAI.APIKey == "" {
		return fmt.Errorf("engine.mode %q requires openai.api_key", c.Engine.Mode)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit requires positive rps and burst when enabled")
	}
	return nil
}

// EngineMode returns the configured mode as its typed value.
func (c *Config) EngineMode() analysis.EngineMode {
	return analysis.EngineMode(c.Engine.Mode)
}

//Personal.AI order the ending
