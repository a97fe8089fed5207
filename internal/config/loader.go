package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all platform settings.
const envPrefix = "PROFITLEAK"

// knownKeys registers every configuration key with viper.  Automatic env
// binding only resolves keys viper has seen, so each key is seeded with its
// zero value here and the real defaults are applied by ApplyDefaults.
var knownKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
	"server.shutdown_timeout",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	"engine.mode", "engine.sidekick.model_id", "engine.sidekick.temperature",
	"engine.sidekick.max_output_tokens", "engine.sidekick.timeout_ms",
	"openai.api_key", "openai.base_url", "openai.request_timeout_ms",
	"cache.enabled", "cache.addr", "cache.password", "cache.db", "cache.ttl",
	"rate_limit.enabled", "rate_limit.rps", "rate_limit.burst",
	"metrics.enabled",
}

// newViper builds a pre-configured Viper instance: YAML file type,
// PROFITLEAK_ env prefix, automatic env binding, and a key replacer that maps
// "." → "_" so that nested keys like "openai.api_key" resolve to
// "PROFITLEAK_OPENAI_API_KEY".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range knownKeys {
		v.SetDefault(key, nil)
	}
	return v
}

// Load reads the YAML file at configPath, merges any PROFITLEAK_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from PROFITLEAK_* environment
// variables, with no config file required.  This is the preferred loading
// strategy for containerised deployments.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed Config
// whenever the file changes on disk.  Intended for hot-reloading non-critical
// settings such as log level and rate-limit thresholds; a change that fails
// to parse or validate is skipped without invoking the callback.
//
// Watch is non-blocking; viper manages the background goroutine.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

//Personal.AI order the ending
