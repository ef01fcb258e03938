package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeguard-ai/lifeguard-backend/internal/metrics"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			handler, c.Request.Method, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			handler, c.Request.Method,
		).Observe(time.Since(start).Seconds())
	}
}
