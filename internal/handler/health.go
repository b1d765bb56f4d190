package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the gateway is running.  It does
// not probe the backend; a dead backend surfaces as 502s on the routes
// that need it.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
