package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger emits one slog record per API request. Lookup handlers
// carry the upstream round trips, so the elapsed time here covers
// bootstrap resolution and candidate iteration, not just local work.
// Server-side failures log at error, client mistakes at warn.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		if logger == nil {
			return
		}

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"took_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if rawQuery != "" {
			attrs = append(attrs, "params", rawQuery)
		}

		switch {
		case status >= 500:
			logger.Error("api request", attrs...)
		case status >= 400:
			logger.Warn("api request", attrs...)
		default:
			logger.Info("api request", attrs...)
		}
	}
}
