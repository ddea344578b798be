package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonsys/scheduling-service/pkg/logger"
)

// RequestLogging logs one structured line per request, through the
// pkg/logger wrapper rather than raw fmt output.
func RequestLogging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		entry := log.With(
			"method", method,
			"path", path,
			"status_code", statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if requestID, exists := c.Get("request_id"); exists {
			entry = entry.With("request_id", requestID)
		}

		switch {
		case statusCode >= 500:
			entry.Error("request completed with server error")
		case statusCode >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Info("request completed")
		}
	}
}
