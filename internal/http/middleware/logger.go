package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs one structured line per request
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			path := c.Request().URL.Path
			if q := c.Request().URL.RawQuery; q != "" {
				path = path + "?" + q
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			var event *zerolog.Event
			switch {
			case status >= 500:
				event = log.Error()
			case status >= 400:
				event = log.Warn()
			default:
				event = log.Info()
			}

			if requestID, ok := c.Get("request_id").(string); ok {
				event = event.Str("request_id", requestID)
			}
			if err != nil {
				event = event.Err(err)
			}

			event.
				Str("method", c.Request().Method).
				Str("path", path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Int64("bytes", c.Response().Size).
				Str("remote_ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("http_request")

			return nil
		}
	}
}
