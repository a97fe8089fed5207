package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// AnalyzeHandler serves the assessment analysis endpoint.
type AnalyzeHandler struct {
	service *analysis.Service
	logger  logging.Logger
}

// NewAnalyzeHandler wires the handler.
func NewAnalyzeHandler(service *analysis.Service, logger logging.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalyzeHandler{service: service, logger: logger.Named("analyze")}
}

// Analyze handles POST /api/v1/assessments/analyze.  The body is one
// questionnaire submission; the response is the full report.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var answers assessment.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		respondError(c, errors.Validation("malformed request body").WithCause(err))
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), &answers)
	if err != nil {
		if !errors.IsValidation(err) {
			h.logger.Error("analysis failed",
				logging.String("code", errors.GetCode(err).String()),
				logging.Err(err),
			)
		}
		respondError(c, err)
		return
	}

	c.Header("X-Analysis-Path", result.Path)
	if result.Cached {
		c.Header("X-Cache", "HIT")
	}
	c.JSON(http.StatusOK, result.Report)
}

//Personal.AI order the ending
