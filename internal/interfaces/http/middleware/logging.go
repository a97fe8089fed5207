package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
)

// RequestLogging logs one structured entry per request.  Client errors log at
// warn, server errors at error, everything else at info.
func RequestLogging(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", status),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("request_id", GetRequestID(c)),
			logging.String("client_ip", c.ClientIP()),
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request served", fields...)
		}
	}
}

//Personal.AI order the ending
