package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
	metrics "github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

func newTestRouter(t *testing.T, opts RouterOptions) http.Handler {
	t.Helper()
	if opts.Mode == "" {
		opts.Mode = "test"
	}
	if opts.Service == nil {
		svc, err := analysis.NewService(analysis.ModeRules, nil, nil, nil, nil)
		require.NoError(t, err)
		opts.Service = svc
	}
	return NewRouter(opts)
}

func postAnalyze(t *testing.T, router http.Handler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"businessType":     "service",
		"businessOffering": "House painting",
		"revenue":          "100k-250k",
		"trackingSystem":   "spreadsheet",
		"followUpProcess":  "manual",
		"leadSources":      []string{"referrals"},
	}
}

func TestAnalyzeEndpointReturnsReport(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	rec := postAnalyze(t, router, validPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rules", rec.Header().Get("X-Analysis-Path"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var report assessment.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.NoError(t, report.Validate())
	assert.GreaterOrEqual(t, len(report.ProfitLeaks), assessment.MinFindings)
}

func TestAnalyzeEndpointRejectsMissingFields(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	payload := validPayload()
	delete(payload, "trackingSystem")
	delete(payload, "revenue")

	rec := postAnalyze(t, router, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ASMT_001", body["code"])
	assert.Contains(t, body["detail"], "revenue")
	assert.Contains(t, body["detail"], "trackingSystem")
}

func TestAnalyzeEndpointRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/analyze",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzAlwaysOK(t *testing.T) {
	router := newTestRouter(t, RouterOptions{Version: "1.2.3"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1.2.3")
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestReadyzReflectsDependencies(t *testing.T) {
	router := newTestRouter(t, RouterOptions{
		ReadyChecks: map[string]handlers.Pinger{"cache": stubPinger{}},
	})
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	router = newTestRouter(t, RouterOptions{
		ReadyChecks: map[string]handlers.Pinger{
			"cache": stubPinger{err: context.DeadlineExceeded},
		},
	})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, RouterOptions{Metrics: metrics.NewMetrics()})

	// Drive one request through so the HTTP counters have a sample.
	postAnalyze(t, router, validPayload())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "profitleak_http_requests_total")
}

func TestRateLimitEnforced(t *testing.T) {
	cfg := middleware.DefaultRateLimitConfig()
	cfg.RequestsPerSecond = 1
	cfg.BurstSize = 2
	router := newTestRouter(t, RouterOptions{RateLimit: &cfg})

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = postAnalyze(t, router, validPayload())
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "COMMON_004")
}

func TestRateLimitSkipsProbes(t *testing.T) {
	cfg := middleware.DefaultRateLimitConfig()
	cfg.RequestsPerSecond = 0.001
	cfg.BurstSize = 1
	router := newTestRouter(t, RouterOptions{RateLimit: &cfg})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/assessments/analyze", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerShutdown(t *testing.T) {
	srv := NewServer(ServerConfig{Port: 0, ShutdownTimeout: time.Second},
		newTestRouter(t, RouterOptions{}), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

//Personal.AI order the ending
