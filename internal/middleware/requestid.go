package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
)

// RequestID assigns every request a correlation ID, echoes it in the
// X-Request-ID response header and plants it in the request context so
// the backend client forwards it on every call it makes on behalf of
// this request.  An ID supplied by the caller is kept; otherwise a
// fresh UUID is generated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set("X-Request-ID", id)

			req := c.Request()
			c.SetRequest(req.WithContext(backend.WithRequestID(req.Context(), id)))
			return next(c)
		}
	}
}
