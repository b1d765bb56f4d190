package model

import "time"

// SeatStatus enumerates the server-side availability states of a seat.
// The backend is the single authority for these values; the gateway
// never invents a status, it only reflects what the last response said.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE" // free, not held by anyone
	SeatBlocked   SeatStatus = "BLOCKED"   // soft-reserved by one user until blocked_until
	SeatBooked    SeatStatus = "BOOKED"    // permanently taken by a completed booking
)

// Seat mirrors a seat record as returned by the backend API.  Seats are
// scoped to a screen and identified by row label plus number within the
// row.  A BLOCKED seat carries the holder's user ID and the lock expiry;
// both are null otherwise.  Expiry is enforced server-side only, so a
// seat reported BLOCKED here may already have reverted to AVAILABLE by
// the time the next request lands.
//
// Fields:
//  ID              – seat identifier, unique per screen.
//  SeatRow         – row label (e.g. "A").
//  SeatNumber      – seat number within the row.
//  SeatCode        – display label, row+number (e.g. "A4").
//  Status          – AVAILABLE, BLOCKED or BOOKED.
//  ScreenID        – owning screen.
//  BookingID       – booking that consumed the seat (nullable).
//  BlockedByUserID – holder of the current block (nullable).
//  BlockedUntil    – when the block expires server-side (nullable).
type Seat struct {
	ID              uint64     `json:"id"`
	SeatRow         string     `json:"seat_row"`
	SeatNumber      uint32     `json:"seat_number"`
	SeatCode        string     `json:"seat_code"`
	Status          SeatStatus `json:"status"`
	ScreenID        uint64     `json:"screen_id"`
	BookingID       *uint64    `json:"booking_id"`
	BlockedByUserID *uint64    `json:"blocked_by_user_id"`
	BlockedUntil    *time.Time `json:"blocked_until"`
}

// BlockedBy reports whether the seat is currently BLOCKED and held by
// the given user according to the last server response.
func (s Seat) BlockedBy(userID uint64) bool {
	return s.Status == SeatBlocked && s.BlockedByUserID != nil && *s.BlockedByUserID == userID
}
