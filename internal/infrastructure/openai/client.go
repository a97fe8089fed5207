// Package openai implements the chat-model backend against any
// OpenAI-compatible chat-completions endpoint.  The client maps transport and
// API failures onto the generation error taxonomy so callers never see raw
// HTTP details.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/intelligence/sidekick_gpt"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
)

// DefaultBaseURL is the public OpenAI API endpoint.  Override via Config for
// proxies and compatible providers.
const DefaultBaseURL = "https://api.openai.com/v1"

// maxErrorBody caps how much of an API error body is read for diagnostics.
const maxErrorBody = 4096

// Config carries the transport settings of the client.
type Config struct {
	APIKey  string `json:"api_key" mapstructure:"api_key"`
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// RequestTimeoutMs bounds a single HTTP round trip.  The per-analysis
	// deadline is enforced by the caller's context; this is a backstop for
	// hung connections.
	RequestTimeoutMs int `json:"request_timeout_ms" mapstructure:"request_timeout_ms"`
}

// Validate checks that the client can be constructed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.InvalidParam("openai api_key must not be empty")
	}
	return nil
}

// Client talks to a chat-completions endpoint.  It satisfies
// sidekick_gpt.ChatBackend and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ sidekick_gpt.ChatBackend = (*Client)(nil)

// NewClient constructs a Client from cfg.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.InvalidParam("openai config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := 60 * time.Second
	if cfg.RequestTimeoutMs > 0 {
		timeout = time.Duration(cfg.RequestTimeoutMs) * time.Millisecond
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Wire types of the chat-completions protocol.  Only the fields this client
// reads or writes are declared.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete performs one chat-completion call and returns the assistant's raw
// text reply.
func (c *Client) Complete(ctx context.Context, req *sidekick_gpt.ChatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "encoding chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "building chat request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Wrap(err, errors.ErrCodeGenerationTimeout, "model call timed out")
		}
		return "", errors.Wrap(err, errors.ErrCodeGenerationUnreachable, "model backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeGenerationEmpty, "decoding completion response")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New(errors.ErrCodeGenerationEmpty, "completion returned no choices")
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.New(errors.ErrCodeGenerationEmpty, "completion returned empty content")
	}
	return content, nil
}

// statusError maps a non-200 response onto the generation taxonomy.
func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	detail := strings.TrimSpace(string(raw))
	var parsed chatCompletionResponse
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != nil {
		detail = parsed.Error.Message
	}

	var code errors.ErrorCode
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = errors.ErrCodeGenerationAuth
	case http.StatusTooManyRequests:
		code = errors.ErrCodeGenerationQuota
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		code = errors.ErrCodeGenerationTimeout
	default:
		code = errors.ErrCodeGenerationUnreachable
	}
	return errors.New(code, fmt.Sprintf("chat completion returned HTTP %d", resp.StatusCode)).
		WithDetail(detail)
}

//Personal.AI order the ending
