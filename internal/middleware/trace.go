package middleware

import (
	"context"
	"fraudGuard/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type traceKey struct{}

// Trace tags each request with an id, taken from X-Request-ID when the caller
// sent one, and logs the request once it completes.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Set("trace_id", id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), traceKey{}, id)))

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			logger.Info("request",
				"trace_id", id,
				"method", req.Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}

func TraceID(c echo.Context) string {
	id, _ := c.Get("trace_id").(string)
	return id
}

// TraceIDFromContext returns the id stored by Trace, or "".
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
