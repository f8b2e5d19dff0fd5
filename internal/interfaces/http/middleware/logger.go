package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"booked-barber.backend/pkg/logger"
)

// LoggerMiddleware emits one structured log line per request. Server errors
// log at error level, client errors at warn, everything else at info.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(ctx, "HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn(ctx, "HTTP Request", fields...)
		default:
			logger.Info(ctx, "HTTP Request", fields...)
		}
	}
}
