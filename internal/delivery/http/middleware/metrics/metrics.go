package http_metrics_middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/matchroom/internal/metrics"
)

// Metrics records request count and latency labelled by the matched route
// template, so room ids never become label values.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status()),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			ctx.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
