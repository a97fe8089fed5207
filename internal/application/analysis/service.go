// Package analysis orchestrates one questionnaire analysis end to end:
// schema validation, engine selection, caching, and observability.  It owns
// no analysis logic itself; the deterministic engine and the generative
// generator are injected.
package analysis

import (
	"context"
	"time"

	domainassessment "github.com/turtacn/ProfitLeak-Intelligence/internal/domain/assessment"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/intelligence/leak_rules"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// ─────────────────────────────────────────────────────────────────────────────
// Engine modes
// ─────────────────────────────────────────────────────────────────────────────

// EngineMode selects which analysis path serves a request.
type EngineMode string

const (
	// ModeRules always runs the deterministic rule engine.
	ModeRules EngineMode = "rules"

	// ModeGPT always runs the generative path; its failures surface to the
	// caller unmasked.
	ModeGPT EngineMode = "gpt"

	// ModeAuto prefers the generative path and falls back to the rule engine
	// when the model call or reply recovery fails.  Validation failures never
	// fall back; bad input is bad input on either path.
	ModeAuto EngineMode = "auto"
)

// IsValid returns true for a known mode.
func (m EngineMode) IsValid() bool {
	switch m {
	case ModeRules, ModeGPT, ModeAuto:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Collaborator contracts
// ─────────────────────────────────────────────────────────────────────────────

// Generator is the generative path as the service sees it.
type Generator interface {
	Generate(ctx context.Context, a *assessment.Answers) (*assessment.Report, error)
}

// ReportCache stores generative results keyed by submission digest.  A nil
// report with a nil error is a miss.
type ReportCache interface {
	Get(ctx context.Context, a *assessment.Answers) (*assessment.Report, error)
	Set(ctx context.Context, a *assessment.Answers, report *assessment.Report) error
}

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Result pairs a report with which path actually produced it.
type Result struct {
	Report *assessment.Report
	Path   string
	Cached bool
}

// Service runs analyses.  Construct with NewService; the zero value is not
// usable.
type Service struct {
	mode      EngineMode
	generator Generator
	cache     ReportCache
	metrics   *metrics.Metrics
	logger    logging.Logger
}

// NewService wires the orchestrator.  generator may be nil only when mode is
// ModeRules; cache, metrics and logger are optional.
func NewService(mode EngineMode, generator Generator, cache ReportCache, m *metrics.Metrics, logger logging.Logger) (*Service, error) {
	if !mode.IsValid() {
		return nil, errors.InvalidParam("unknown engine mode: " + string(mode))
	}
	if generator == nil && mode != ModeRules {
		return nil, errors.InvalidParam("engine mode " + string(mode) + " requires a generator")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		mode:      mode,
		generator: generator,
		cache:     cache,
		metrics:   m,
		logger:    logger,
	}, nil
}

// Analyze validates the submission and produces a report on the configured
// path.  The answers are normalised in place by validation; everything else
// treats them as read-only.
func (s *Service) Analyze(ctx context.Context, a *assessment.Answers) (*Result, error) {
	if err := domainassessment.Validate(a); err != nil {
		// Rejected before an engine was selected; neither path label fits.
		s.observe(metrics.PathNone, metrics.OutcomeInvalid, 0, 0)
		return nil, err
	}

	switch s.mode {
	case ModeRules:
		return s.runRules(a), nil
	case ModeGPT:
		return s.runGenerative(ctx, a)
	default: // ModeAuto
		result, err := s.runGenerative(ctx, a)
		if err == nil {
			return result, nil
		}
		s.logger.Warn("generative path failed, falling back to rules",
			logging.String("code", errors.GetCode(err).String()),
			logging.Err(err),
		)
		return s.runRules(a), nil
	}
}

func (s *Service) runRules(a *assessment.Answers) *Result {
	start := time.Now()
	report := leak_rules.Analyze(a)
	s.observe(metrics.PathRules, metrics.OutcomeOK, time.Since(start), len(report.ProfitLeaks))

	s.logger.Info("deterministic analysis complete",
		logging.Int("findings", len(report.ProfitLeaks)),
		logging.Bool("enriched", a.Enriched()),
	)
	return &Result{Report: report, Path: metrics.PathRules}
}

func (s *Service) runGenerative(ctx context.Context, a *assessment.Answers) (*Result, error) {
	start := time.Now()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, a)
		if err != nil {
			// Cache trouble must never fail an analysis.
			s.logger.Warn("report cache read failed", logging.Err(err))
		}
		if cached != nil {
			s.observe(metrics.PathGPT, metrics.OutcomeCacheHit, time.Since(start), len(cached.ProfitLeaks))
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.Inc()
			}
			return &Result{Report: cached, Path: metrics.PathGPT, Cached: true}, nil
		}
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.Inc()
		}
	}

	report, err := s.generator.Generate(ctx, a)
	if err != nil {
		outcome := metrics.OutcomeInternal
		switch {
		case errors.IsGeneration(err):
			outcome = metrics.OutcomeGenError
		case errors.IsRecovery(err):
			outcome = metrics.OutcomeRecError
		}
		s.observe(metrics.PathGPT, outcome, time.Since(start), 0)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, a, report); err != nil {
			s.logger.Warn("report cache write failed", logging.Err(err))
		}
	}

	s.observe(metrics.PathGPT, metrics.OutcomeOK, time.Since(start), len(report.ProfitLeaks))
	s.logger.Info("generative analysis complete",
		logging.Int("findings", len(report.ProfitLeaks)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return &Result{Report: report, Path: metrics.PathGPT}, nil
}

func (s *Service) observe(path, outcome string, elapsed time.Duration, findings int) {
	if s.metrics != nil {
		s.metrics.ObserveAnalysis(path, outcome, elapsed, findings)
	}
}

//Personal.AI order the ending
