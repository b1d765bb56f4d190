// Package reservation implements the seat-selection state machine at
// the core of the booking flow.  A Session tracks one user's seat selection
// for one show and translates seat toggles into block and
// unblock calls against the backend, which is the single arbiter of
// seat contention.  No seat ever enters or leaves the selection without
// a successful round trip; a click is an attempt, never a result.
package reservation

import (
	"errors"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

// MaxSelection is the hard cap on the local selection.  The seventh
// selection attempt is rejected before any network call is made.
const MaxSelection = 6

var (
	// ErrSelectionFull is returned when a block attempt would exceed
	// MaxSelection.  No request is sent in that case.
	ErrSelectionFull = errors.New("a maximum of 6 seats can be selected")

	// ErrSelectionEmpty is returned when finalization is attempted with
	// nothing selected.
	ErrSelectionEmpty = errors.New("no seats selected")

	// ErrUnknownSeat is returned for a seat ID that is not part of the
	// session's screen inventory.
	ErrUnknownSeat = errors.New("unknown seat")

	// ErrShowInactive is returned when a session is opened for a show
	// the backend reports as no longer bookable.
	ErrShowInactive = errors.New("show is not active")
)

// SeatState is the combined per-seat state derived from the server
// status, the holder identity and local selection membership.  It
// is never stored: deriving it on demand keeps visual state and lock
// state from diverging.
type SeatState string

const (
	StateAvailable      SeatState = "AVAILABLE"        // free; click attempts a block
	StateBlockedByMe    SeatState = "BLOCKED_BY_ME"    // held by me and locally selected; click attempts an unblock
	StateBlockedByOther SeatState = "BLOCKED_BY_OTHER" // held by someone else; not interactive
	StateBooked         SeatState = "BOOKED"           // terminal; not interactive
)

// StateOf derives the seat state for one user.  A BLOCKED seat counts
// as BLOCKED_BY_ME only when it is both held by the user *and* in the
// local selection; a block held by the same user from another session
// is treated as foreign, matching the click rules of the booking
// screen.
func StateOf(seat model.Seat, userID uint64, selectedLocally bool) SeatState {
	switch {
	case seat.Status == model.SeatBooked:
		return StateBooked
	case seat.Status == model.SeatBlocked && selectedLocally && seat.BlockedBy(userID):
		return StateBlockedByMe
	case seat.Status == model.SeatBlocked:
		return StateBlockedByOther
	default:
		return StateAvailable
	}
}

// Selectable reports whether a seat in this state responds to clicks.
func (s SeatState) Selectable() bool {
	return s == StateAvailable || s == StateBlockedByMe
}
