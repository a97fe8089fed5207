// Package sidekick_gpt implements the generative analysis path: prompt
// construction for the Profit Sidekick persona, the chat-model backend
// abstraction, reply recovery, and report generation.  The package never
// talks to the network itself; transports implement ChatBackend.
package sidekick_gpt

import (
	"context"
	"time"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
)

// ---------------------------------------------------------------------------
// Chat protocol types
// ---------------------------------------------------------------------------

// Message roles understood by chat-completion backends.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single turn of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one fully-specified completion call.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// ChatBackend is the transport behind the generative path.  Complete returns
// the assistant's raw text reply; failures must be reported as GEN_* coded
// errors so callers can distinguish backend trouble from unusable replies.
type ChatBackend interface {
	Complete(ctx context.Context, req *ChatRequest) (string, error)
}

// ---------------------------------------------------------------------------
// SidekickConfig
// ---------------------------------------------------------------------------

// SidekickConfig holds the tunables of the Profit Sidekick model calls.
// Temperature is a pointer so that an explicit 0 (deterministic sampling)
// survives default application.
type SidekickConfig struct {
	ModelID         string   `json:"model_id" mapstructure:"model_id"`
	Temperature     *float64 `json:"temperature" mapstructure:"temperature"`
	MaxOutputTokens int      `json:"max_output_tokens" mapstructure:"max_output_tokens"`
	TimeoutMs       int      `json:"timeout_ms" mapstructure:"timeout_ms"`
}

// NewSidekickConfig returns the production defaults.
func NewSidekickConfig() *SidekickConfig {
	temperature := 0.7
	return &SidekickConfig{
		ModelID:         "gpt-4o",
		Temperature:     &temperature,
		MaxOutputTokens: 1500,
		TimeoutMs:       30000,
	}
}

// Validate checks the configuration ranges.
func (c *SidekickConfig) Validate() error {
	if c.ModelID == "" {
		return errors.InvalidParam("model_id must not be empty")
	}
	if c.Temperature == nil {
		return errors.InvalidParam("temperature must be set")
	}
	if *c.Temperature < 0 || *c.Temperature > 2.0 {
		return errors.InvalidParam("temperature must be between 0 and 2.0")
	}
	if c.MaxOutputTokens <= 0 {
		return errors.InvalidParam("max_output_tokens must be positive")
	}
	if c.TimeoutMs <= 0 {
		return errors.InvalidParam("timeout_ms must be positive")
	}
	return nil
}

// Timeout returns the per-call deadline as a duration.
func (c *SidekickConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

//Personal.AI order the ending
