package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = echo.HeaderXRequestID

// RequestID tags every request with an ID for log correlation. An inbound
// X-Request-ID is honored so upstream proxies can trace through.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}

			c.Response().Header().Set(requestIDHeader, id)
			c.Set("request_id", id)

			return next(c)
		}
	}
}
