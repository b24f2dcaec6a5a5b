package middleware

import (
	"time"

	"financetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// HTTPMetrics records request counts and latencies per method and route.
// The route template is used as the path label to keep cardinality bounded.
func HTTPMetrics(recorder services.MetricsRecorderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			recorder.RecordHTTPRequest(
				c.Request().Method,
				path,
				c.Response().Status,
				time.Since(start),
			)

			return err
		}
	}
}
