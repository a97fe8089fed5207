package analysis

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metrics "github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

type stubGenerator struct {
	report *assessment.Report
	err    error
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context, _ *assessment.Answers) (*assessment.Report, error) {
	s.calls++
	return s.report, s.err
}

type memoryCache struct {
	entries  map[string]*assessment.Report
	getErr   error
	setCalls int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*assessment.Report{}}
}

func (m *memoryCache) key(a *assessment.Answers) string {
	return a.BusinessType + "|" + a.Revenue + "|" + a.BiggestImprovement
}

func (m *memoryCache) Get(_ context.Context, a *assessment.Answers) (*assessment.Report, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[m.key(a)], nil
}

func (m *memoryCache) Set(_ context.Context, a *assessment.Answers, report *assessment.Report) error {
	m.setCalls++
	m.entries[m.key(a)] = report
	return nil
}

func validAnswers() *assessment.Answers {
	return &assessment.Answers{
		BusinessType:     "service",
		BusinessOffering: "Window cleaning",
		Revenue:          "100k-250k",
		TrackingSystem:   "spreadsheet",
		FollowUpProcess:  "manual",
	}
}

func generatedReport() *assessment.Report {
	return &assessment.Report{
		Summary:        "Model summary.",
		Recommendation: "Model recommendation.",
		ProfitLeaks: []assessment.Finding{
			{Title: "A", Description: "a", PotentialImpact: assessment.ImpactHigh},
			{Title: "B", Description: "b", PotentialImpact: assessment.ImpactMedium},
			{Title: "C", Description: "c", PotentialImpact: assessment.ImpactLow},
		},
	}
}

func TestNewServiceModeChecks(t *testing.T) {
	_, err := NewService("turbo", nil, nil, nil, nil)
	require.Error(t, err)

	_, err = NewService(ModeGPT, nil, nil, nil, nil)
	require.Error(t, err, "generative modes need a generator")

	_, err = NewService(ModeRules, nil, nil, nil, nil)
	require.NoError(t, err)
}

func TestAnalyzeRejectsInvalidSubmission(t *testing.T) {
	svc, err := NewService(ModeRules, nil, nil, nil, nil)
	require.NoError(t, err)

	a := validAnswers()
	a.TrackingSystem = ""

	_, err = svc.Analyze(context.Background(), a)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAssessmentInvalid))
}

func TestAnalyzeInvalidSubmissionObservedOnNeutralPath(t *testing.T) {
	m := metrics.NewMetrics()
	gen := &stubGenerator{report: generatedReport()}
	svc, err := NewService(ModeAuto, gen, nil, m, nil)
	require.NoError(t, err)

	a := validAnswers()
	a.TrackingSystem = ""

	_, err = svc.Analyze(context.Background(), a)
	require.Error(t, err)

	// A rejection happens before engine selection; no path label may claim it.
	assert.InDelta(t, 1, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(metrics.PathNone, metrics.OutcomeInvalid)), 1e-9)
	assert.InDelta(t, 0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(metrics.PathRules, metrics.OutcomeInvalid)), 1e-9)
	assert.InDelta(t, 0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(metrics.PathGPT, metrics.OutcomeInvalid)), 1e-9)
}

func TestAnalyzeRulesMode(t *testing.T) {
	svc, err := NewService(ModeRules, nil, nil, metrics.NewMetrics(), nil)
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), validAnswers())
	require.NoError(t, err)

	assert.Equal(t, metrics.PathRules, result.Path)
	assert.False(t, result.Cached)
	require.NoError(t, result.Report.Validate())
}

func TestAnalyzeGPTModeSurfacesFailures(t *testing.T) {
	gen := &stubGenerator{err: errors.New(errors.ErrCodeGenerationTimeout, "model call timed out")}
	svc, err := NewService(ModeGPT, gen, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.Analyze(context.Background(), validAnswers())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGenerationTimeout))
}

func TestAnalyzeAutoFallsBackToRules(t *testing.T) {
	gen := &stubGenerator{err: errors.New(errors.ErrCodeRecoveryNoJSON, "no JSON object in model reply")}
	svc, err := NewService(ModeAuto, gen, nil, nil, nil)
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), validAnswers())
	require.NoError(t, err)
	assert.Equal(t, metrics.PathRules, result.Path)
	require.NoError(t, result.Report.Validate())
	assert.Equal(t, 1, gen.calls)
}

func TestAnalyzeAutoDoesNotFallBackOnValidation(t *testing.T) {
	gen := &stubGenerator{report: generatedReport()}
	svc, err := NewService(ModeAuto, gen, nil, nil, nil)
	require.NoError(t, err)

	a := validAnswers()
	a.BusinessType = "  "

	_, err = svc.Analyze(context.Background(), a)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Zero(t, gen.calls)
}

func TestAnalyzeGenerativeCaching(t *testing.T) {
	gen := &stubGenerator{report: generatedReport()}
	cache := newMemoryCache()
	svc, err := NewService(ModeGPT, gen, cache, metrics.NewMetrics(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, validAnswers())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, cache.setCalls)

	second, err := svc.Analyze(ctx, validAnswers())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, gen.calls, "a cache hit must not call the model")
	assert.Equal(t, first.Report, second.Report)
}

func TestAnalyzeCacheErrorsDoNotFailTheRun(t *testing.T) {
	gen := &stubGenerator{report: generatedReport()}
	cache := newMemoryCache()
	cache.getErr = errors.New(errors.ErrCodeCacheError, "redis down")
	svc, err := NewService(ModeGPT, gen, cache, nil, nil)
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), validAnswers())
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	require.NoError(t, result.Report.Validate())
}

//Personal.AI order the ending
