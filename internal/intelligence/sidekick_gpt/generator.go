package sidekick_gpt

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// ModelObserver receives one record per chat-model call: the model id, an
// outcome status ("ok" or a platform error code), and the call duration.
type ModelObserver interface {
	ObserveModelRequest(model, status string, elapsed time.Duration)
}

// ReportGenerator drives one generative analysis: prompt construction, the
// backend call under the configured deadline, and reply recovery.  It is
// stateless and safe for concurrent use.
type ReportGenerator struct {
	backend  ChatBackend
	config   *SidekickConfig
	logger   logging.Logger
	observer ModelObserver
}

// NewReportGenerator wires a generator.  A nil config selects the production
// defaults; a nil logger silences the generator; a nil observer disables
// model-call metrics.
func NewReportGenerator(backend ChatBackend, config *SidekickConfig, logger logging.Logger, observer ModelObserver) (*ReportGenerator, error) {
	if backend == nil {
		return nil, errors.InvalidParam("chat backend must not be nil")
	}
	if config == nil {
		config = NewSidekickConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ReportGenerator{backend: backend, config: config, logger: logger, observer: observer}, nil
}

// Generate runs the full generative path for one validated answer set.
// Backend failures surface as GEN_* errors, unusable replies as REC_* errors;
// a nil error guarantees the returned report satisfies every report invariant.
func (g *ReportGenerator) Generate(ctx context.Context, a *assessment.Answers) (*assessment.Report, error) {
	messages, err := BuildMessages(a)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.config.Timeout())
	defer cancel()

	req := &ChatRequest{
		Model:       g.config.ModelID,
		Messages:    messages,
		Temperature: *g.config.Temperature,
		MaxTokens:   g.config.MaxOutputTokens,
	}

	start := time.Now()
	raw, err := g.backend.Complete(callCtx, req)
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case callCtx.Err() == context.DeadlineExceeded:
			err = errors.Wrap(err, errors.ErrCodeGenerationTimeout, "model call timed out")
		case errors.GetCode(err) == errors.CodeUnknown:
			err = errors.Wrap(err, errors.ErrCodeGenerationUnreachable, "chat completion failed")
		default:
			err = errors.Wrap(err, errors.CodeUnknown, "chat completion failed")
		}
		g.observeModel(errors.GetCode(err).String(), elapsed)
		g.logger.Warn("model call failed",
			logging.String("model", g.config.ModelID),
			logging.Duration("elapsed", elapsed),
			logging.Err(err),
		)
		return nil, err
	}
	g.observeModel("ok", elapsed)

	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(errors.ErrCodeGenerationEmpty, "model returned empty content")
	}

	report, err := RecoverReport(raw)
	if err != nil {
		g.logger.Warn("reply recovery failed",
			logging.String("model", g.config.ModelID),
			logging.Err(err),
		)
		return nil, err
	}

	g.logger.Info("generative analysis complete",
		logging.String("model", g.config.ModelID),
		logging.Int("findings", len(report.ProfitLeaks)),
		logging.Duration("elapsed", elapsed),
	)
	return report, nil
}

func (g *ReportGenerator) observeModel(status string, elapsed time.Duration) {
	if g.observer != nil {
		g.observer.ObserveModelRequest(g.config.ModelID, status, elapsed)
	}
}

//Personal.AI order the ending
