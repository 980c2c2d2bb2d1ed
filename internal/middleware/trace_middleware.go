package middleware

import (
	"context"

	"policyAdvisor/business/recommend"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware assigns every request a trace id, honoring one supplied by
// the caller, and threads it through the request context so service logs can
// correlate.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(traceHeader)
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommend.TraceIDKey, tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(traceHeader, tid)

			return next(c)
		}
	}
}
