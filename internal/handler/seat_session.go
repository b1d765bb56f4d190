package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-gateway/internal/booking"
	"github.com/iliyamo/cinema-booking-gateway/internal/reservation"
)

// SeatSessionHandler drives the seat-selection flow: the seat grid
// view, seat toggles, finalization and teardown.  All methods assume
// JWT authentication has run; the session itself is owned by the
// reservation manager and scoped to (user, show).
type SeatSessionHandler struct {
	Sessions  *reservation.Manager
	Finalizer *booking.Finalizer
}

// NewSeatSessionHandler constructs a SeatSessionHandler.  Both
// dependencies must be non-nil.
func NewSeatSessionHandler(sessions *reservation.Manager, finalizer *booking.Finalizer) *SeatSessionHandler {
	if sessions == nil || finalizer == nil {
		panic("nil dependency passed to NewSeatSessionHandler")
	}
	return &SeatSessionHandler{Sessions: sessions, Finalizer: finalizer}
}

// GetSeatMap handles GET /v1/shows/:id/seats.  It opens (or resumes)
// the user's seat session for the show and returns the full screen
// view: show header, seat grid in server row order, current selection
// and pricing summary.  With ?refresh=true an existing session
// refetches the inventory first and reconciles the selection against
// it, dropping seats whose blocks expired server-side.
func (h *SeatSessionHandler) GetSeatMap(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx := c.Request().Context()
	_, existed := h.Sessions.Peek(userID, showID)
	sess, err := h.Sessions.Session(ctx, userID, showID)
	if err != nil {
		return writeError(c, err)
	}
	if existed && c.QueryParam("refresh") == "true" {
		if err := sess.Refresh(ctx); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(http.StatusOK, sess.View())
}

// ToggleSeat handles POST /v1/shows/:id/seats/:seatId/toggle.  One
// call is one click: it attempts a block for an available seat or an
// unblock for a seat the user holds, and reports the seat's state
// after the round trip together with the updated summary.  Clicks on
// booked seats, foreign blocks and seats with a request already in
// flight change nothing and report changed=false.
func (h *SeatSessionHandler) ToggleSeat(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	seatID, ok := pathID(c, "seatId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}

	sess, found := h.Sessions.Peek(userID, showID)
	if !found {
		// Toggling without having opened the seat map first has no
		// session to act on.
		return c.JSON(http.StatusConflict, echo.Map{"error": "no open seat session for this show"})
	}

	res, err := sess.Toggle(c.Request().Context(), seatID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"changed":  res.Changed,
		"seat":     res.Seat,
		"selected": sess.Selected(),
		"summary":  sess.View().Summary,
	})
}

// ConfirmBooking handles POST /v1/shows/:id/confirm.  It finalizes the
// current selection into a booking through one atomic backend call.
// On success the session is closed without releasing anything (the
// seats just became BOOKED) and the backend's booking record is
// returned.  On failure the selection is left exactly as it was so the
// user can adjust and retry from the seat screen.
func (h *SeatSessionHandler) ConfirmBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	sess, found := h.Sessions.Peek(userID, showID)
	if !found {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no open seat session for this show"})
	}

	booked, err := h.Finalizer.Finalize(c.Request().Context(), booking.Request{
		UserID: userID,
		Show:   sess.Show(),
		Seats:  sess.SelectedSeats(),
	})
	if err != nil {
		return writeError(c, err)
	}
	h.Sessions.Close(userID, showID)
	return c.JSON(http.StatusCreated, booked)
}

// ReleaseSelection handles DELETE /v1/shows/:id/selection.  It is the
// teardown hook for an abandoned flow: every held seat is unblocked
// best-effort and the session dropped.  Releasing with no open session
// is a no-op.
func (h *SeatSessionHandler) ReleaseSelection(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	released := h.Sessions.Release(c.Request().Context(), userID, showID)
	return c.JSON(http.StatusOK, echo.Map{"released": released})
}
