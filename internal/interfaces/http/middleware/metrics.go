package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	metrics "github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts and latency.  The route template is used as
// the path label so that parameterised routes stay low-cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

//Personal.AI order the ending
