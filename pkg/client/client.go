// Package client is the Go SDK for the ProfitLeak-Intelligence HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// Version identifies this SDK in the User-Agent header.
const Version = "0.1.0"

// APIError is an error response from the API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("profitleak: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// IsValidation reports whether the submission was rejected as invalid.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsRateLimited reports whether the client exceeded the API rate limit.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError reports whether the analysis failed server-side.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// Client is the SDK entry point.  It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// NewClient constructs a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: baseURL must not be empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid baseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: baseURL scheme must be http or https")
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		userAgent:    fmt.Sprintf("profitleak-go-sdk/%s", Version),
		retryMax:     2,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Analyze submits a questionnaire and returns the analysis report.
// Server-side failures (5xx) are retried with exponential backoff; validation
// rejections are returned immediately as *APIError.
func (c *Client) Analyze(ctx context.Context, answers *assessment.Answers) (*assessment.Report, error) {
	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("client: encoding answers: %w", err)
	}

	var lastErr error
	wait := c.retryWaitMin
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			wait *= 2
			if wait > c.retryWaitMax {
				wait = c.retryWaitMax
			}
		}

		report, retryable, err := c.analyzeOnce(ctx, payload)
		if err == nil {
			return report, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) analyzeOnce(ctx context.Context, payload []byte) (*assessment.Report, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/assessments/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors are worth a retry unless the context is done.
		return nil, ctx.Err() == nil, fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  resp.Header.Get("X-Request-ID"),
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(body, apiErr) != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr.IsServerError(), apiErr
	}

	var report assessment.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, false, fmt.Errorf("client: decoding report: %w", err)
	}
	return &report, false, nil
}

//Personal.AI order the ending
