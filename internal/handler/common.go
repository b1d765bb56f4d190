package handler // handler defines the gateway's HTTP handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
	"github.com/iliyamo/cinema-booking-gateway/internal/reservation"
)

// getUserID extracts the authenticated user's ID from the context,
// where JWTAuth stored it as uint64.
func getUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok && v > 0 {
		return v, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

// writeError translates a failure into the response contract: the
// backend's structured message passes through verbatim with the
// backend's status, client-side rejections become 400s, and transport
// failures become 502.  Nothing propagates beyond this point; every
// handler recovers every error into a visible message.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, reservation.ErrSelectionFull),
		errors.Is(err, reservation.ErrSelectionEmpty):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, reservation.ErrUnknownSeat):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, reservation.ErrShowInactive):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, backend.ErrUnavailable):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "backend unavailable"})
	}
	if apiErr, ok := backend.AsAPIError(err); ok {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return c.JSON(apiErr.Status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
