package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
)

// BookingHandler serves the authenticated user's booking history.
// Creation goes through the seat-session confirm flow, not here.
type BookingHandler struct {
	API *backend.Client
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(api *backend.Client) *BookingHandler {
	if api == nil {
		panic("nil backend client passed to NewBookingHandler")
	}
	return &BookingHandler{API: api}
}

// MyBookings handles GET /v1/bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.API.BookingsByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /v1/bookings/:id.  A booking is only visible
// to the user who made it.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booked, err := h.API.GetBooking(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if booked.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, booked)
}

// CancelBooking handles PUT /v1/bookings/:id/cancel.  Ownership is
// checked here; the backend owns the actual cancellation rules (cutoff
// windows, refunds) and its rejection is passed through verbatim.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	booked, err := h.API.GetBooking(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if booked.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	cancelled, err := h.API.CancelBooking(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cancelled)
}
