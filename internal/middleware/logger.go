package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger emits one structured log line per request with method,
// path, status, duration and the requesting student when known.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ev := logger.Info()
			if status := c.Response().Status; status >= 500 {
				ev = logger.Error()
			}
			if id, ok := StudentID(c); ok {
				ev = ev.Int64("student_id", id)
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}
