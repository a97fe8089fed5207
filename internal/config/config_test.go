package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalYAML = `
server:
  port: 9090
engine:
  mode: rules
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, analysis.ModeRules, cfg.EngineMode())
	assert.Equal(t, "gpt-4o", cfg.Engine.Sidekick.ModelID)
	require.NotNil(t, cfg.Engine.Sidekick.Temperature)
	assert.InDelta(t, 0.7, *cfg.Engine.Sidekick.Temperature, 1e-9)
	assert.Equal(t, 1500, cfg.Engine.Sidekick.MaxOutputTokens)
	assert.InDelta(t, 10, cfg.RateLimit.RPS, 1e-9)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8081
  mode: debug
log:
  level: debug
  format: console
engine:
  mode: auto
  sidekick:
    model_id: gpt-4o-mini
    temperature: 0.2
    max_output_tokens: 800
openai:
  api_key: sk-test
cache:
  enabled: true
  addr: redis:6379
  ttl: 6h
rate_limit:
  enabled: true
  rps: 5
  burst: 10
metrics:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, analysis.ModeAuto, cfg.EngineMode())
	assert.Equal(t, "gpt-4o-mini", cfg.Engine.Sidekick.ModelID)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Cache.ParseTTL())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadKeepsExplicitZeroTemperature(t *testing.T) {
	path := writeConfigFile(t, `
engine:
  mode: gpt
  sidekick:
    temperature: 0
openai:
  api_key: sk-test
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	// An explicit 0 selects deterministic sampling and must not be treated
	// as unset.
	require.NotNil(t, cfg.Engine.Sidekick.Temperature)
	assert.Zero(t, *cfg.Engine.Sidekick.Temperature)
}

func TestLoadRejectsGenerativeModeWithoutAPIKey(t *testing.T) {
	_, err := Load(writeConfigFile(t, "engine:\n  mode: gpt\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestLoadRejectsUnknownEngineMode(t *testing.T) {
	_, err := Load(writeConfigFile(t, "engine:\n  mode: turbo\n"))
	require.Error(t, err)
}

func TestLoadRejectsBadServerMode(t *testing.T) {
	_, err := Load(writeConfigFile(t, "server:\n  mode: production\nengine:\n  mode: rules\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PROFITLEAK_SERVER_PORT", "7070")
	t.Setenv("PROFITLEAK_ENGINE_MODE", "rules")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, analysis.ModeRules, cfg.EngineMode())
}

func TestValidateRateLimit(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Engine.Mode = string(analysis.ModeRules)
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RPS = -1
	require.Error(t, cfg.Validate())
}

//Personal.AI order the ending
