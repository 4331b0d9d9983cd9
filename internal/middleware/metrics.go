package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/service"
)

// unmatchedRoute labels requests no route template matched, so probing
// random paths cannot grow the label set.
const unmatchedRoute = "unmatched"

// Metrics observes every request under its route template. Paths listed in
// skip (the scrape endpoint, typically) are not recorded.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
