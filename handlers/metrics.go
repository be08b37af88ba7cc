package handlers

import (
	"strconv"
	"time"

	"myregistry/service"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request count and latency per route template.
// Errors are rendered here so the recorded status is the one sent to the client.
func MetricsMiddleware(metrics *service.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			metrics.Requests.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			metrics.RequestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
