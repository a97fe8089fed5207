package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency that can report its own liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version string
	checks  map[string]Pinger
}

// NewHealthHandler wires the handler.  checks maps a component name to its
// probe; nil values are tolerated and skipped.
func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// Healthz handles GET /healthz.  Liveness is unconditional: the process is up.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Readyz handles GET /readyz.  Every registered dependency must answer its
// ping within the probe budget.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{}
	ready := true
	for name, pinger := range h.checks {
		if pinger == nil {
			continue
		}
		if err := pinger.Ping(ctx); err != nil {
			components[name] = err.Error()
			ready = false
		} else {
			components[name] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "components": components})
}

//Personal.AI order the ending
