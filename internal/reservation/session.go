package reservation

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
	"github.com/iliyamo/cinema-booking-gateway/internal/model"
	"github.com/iliyamo/cinema-booking-gateway/internal/monitoring"
	"github.com/iliyamo/cinema-booking-gateway/internal/seatmap"
)

// SeatAPI is the slice of the backend client a session needs to move
// seats between states.  Passing it in explicitly (rather than reading
// shared application state) keeps sessions testable against a mock.
type SeatAPI interface {
	seatmap.SeatSource
	BlockSeats(ctx context.Context, userID uint64, seatIDs []uint64) ([]model.Seat, error)
	UnblockSeats(ctx context.Context, seatIDs []uint64) error
}

// rowRef preserves the grid ordering as loaded: a row label and the
// seat IDs of that row in server order.  Seat records themselves live
// in the seats map so a response for one seat updates exactly one
// place.
type rowRef struct {
	label string
	ids   []uint64
}

// Session is one user's reservation state for one show.  All seat
// mutations are gated on successful backend round trips; the only
// local-only state is the per-seat pending flag that suppresses a
// duplicate request while one is already in flight.
//
// The mutex is held while reading or writing session state but never
// across a network call, so toggles on different seats proceed
// concurrently and each response is applied keyed by its seat ID.
type Session struct {
	mu       sync.Mutex
	userID   uint64
	show     *model.Show
	rows     []rowRef
	seats    map[uint64]model.Seat // as of the last fetch/response
	selected []uint64              // ordered local selection
	pending  map[uint64]struct{}   // seat IDs with a request in flight
	api      SeatAPI
	fee      decimal.Decimal // flat service fee, display only
}

// newSession builds a session from a loaded show and seat map.  The
// selection starts empty; it only ever grows or shrinks through
// successful block/unblock round trips.
func newSession(userID uint64, show *model.Show, grid *seatmap.Map, api SeatAPI, fee decimal.Decimal) *Session {
	s := &Session{
		userID:  userID,
		show:    show,
		seats:   make(map[uint64]model.Seat),
		pending: make(map[uint64]struct{}),
		api:     api,
		fee:     fee,
	}
	s.adoptGrid(grid)
	return s
}

// adoptGrid replaces the seat inventory with a freshly loaded grid.
// Caller must hold the mutex (or own the session exclusively).
func (s *Session) adoptGrid(grid *seatmap.Map) {
	s.rows = s.rows[:0]
	s.seats = make(map[uint64]model.Seat, len(s.seats))
	for _, row := range grid.Rows {
		ref := rowRef{label: row.Label, ids: make([]uint64, 0, len(row.Seats))}
		for _, seat := range row.Seats {
			ref.ids = append(ref.ids, seat.ID)
			s.seats[seat.ID] = seat
		}
		s.rows = append(s.rows, ref)
	}
}

// Show returns the show this session was opened for.
func (s *Session) Show() *model.Show { return s.show }

// Selected returns the ordered local selection as a copy.
func (s *Session) Selected() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.selected))
	copy(out, s.selected)
	return out
}

// SelectedSeats returns the seat records of the local selection in
// selection order, as of the last server response.
func (s *Session) SelectedSeats() []model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Seat, 0, len(s.selected))
	for _, id := range s.selected {
		out = append(out, s.seats[id])
	}
	return out
}

// isSelected reports selection membership.  Caller holds the mutex.
func (s *Session) isSelected(seatID uint64) bool {
	for _, id := range s.selected {
		if id == seatID {
			return true
		}
	}
	return false
}

// ToggleResult reports what a toggle did.  Changed is false for the
// no-op cases: BOOKED seats, seats held by others, and clicks on a seat
// whose previous request is still in flight.
type ToggleResult struct {
	Changed bool     `json:"changed"`
	Seat    SeatView `json:"seat"`
}

// Toggle processes one seat click.  The decision is taken from the
// derived state table:
//
//	BOOKED            → no-op
//	BLOCKED_BY_OTHER  → no-op
//	BLOCKED_BY_ME     → unblock round trip; removed from selection on success
//	AVAILABLE         → cap check, then block round trip; added on success
//
// On any round-trip failure local state is left untouched and the error
// is returned for the handler to surface; retrying is the user's
// re-click, never automatic.
func (s *Session) Toggle(ctx context.Context, seatID uint64) (ToggleResult, error) {
	s.mu.Lock()
	seat, ok := s.seats[seatID]
	if !ok {
		s.mu.Unlock()
		return ToggleResult{}, ErrUnknownSeat
	}
	if _, inFlight := s.pending[seatID]; inFlight {
		// A request for this seat is already on the wire; this click is
		// dropped rather than duplicated.
		res := ToggleResult{Changed: false, Seat: s.viewOf(seat)}
		s.mu.Unlock()
		return res, nil
	}

	switch StateOf(seat, s.userID, s.isSelected(seatID)) {
	case StateBooked, StateBlockedByOther:
		res := ToggleResult{Changed: false, Seat: s.viewOf(seat)}
		s.mu.Unlock()
		return res, nil

	case StateBlockedByMe:
		s.pending[seatID] = struct{}{}
		s.mu.Unlock()
		return s.unblock(ctx, seatID)

	default: // AVAILABLE and not selected
		if len(s.selected) >= MaxSelection {
			res := ToggleResult{Changed: false, Seat: s.viewOf(seat)}
			s.mu.Unlock()
			monitoring.TrackSeatOperation("block", monitoring.OutcomeRejected)
			return res, ErrSelectionFull
		}
		s.pending[seatID] = struct{}{}
		s.mu.Unlock()
		return s.block(ctx, seatID)
	}
}

// block issues the BLOCK round trip for one seat.  The caller has
// already marked the seat pending and released the mutex.
func (s *Session) block(ctx context.Context, seatID uint64) (ToggleResult, error) {
	updated, err := s.api.BlockSeats(ctx, s.userID, []uint64{seatID})

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, seatID)

	if err != nil {
		monitoring.TrackSeatOperation("block", blockOutcome(err))
		// The click implied nothing: the seat stays out of the
		// selection and its record is left as last reported.
		return ToggleResult{Changed: false, Seat: s.viewOf(s.seats[seatID])}, err
	}

	// Adopt every seat record the server returned rather than assuming
	// the request seat came back unchanged; the server may have granted
	// a different outcome than the click anticipated.
	for _, seat := range updated {
		if _, known := s.seats[seat.ID]; known {
			s.seats[seat.ID] = seat
		}
	}
	s.selected = append(s.selected, seatID)
	monitoring.TrackSeatOperation("block", monitoring.OutcomeSuccess)
	return ToggleResult{Changed: true, Seat: s.viewOf(s.seats[seatID])}, nil
}

// unblock issues the UNBLOCK round trip for one seat.  The caller has
// already marked the seat pending and released the mutex.
func (s *Session) unblock(ctx context.Context, seatID uint64) (ToggleResult, error) {
	err := s.api.UnblockSeats(ctx, []uint64{seatID})

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, seatID)

	if err != nil {
		monitoring.TrackSeatOperation("unblock", monitoring.OutcomeError)
		// The seat stays selected; releasing it again is the user's
		// call.
		return ToggleResult{Changed: false, Seat: s.viewOf(s.seats[seatID])}, err
	}

	s.removeSelected(seatID)
	seat := s.seats[seatID]
	seat.Status = model.SeatAvailable
	seat.BlockedByUserID = nil
	seat.BlockedUntil = nil
	s.seats[seatID] = seat
	monitoring.TrackSeatOperation("unblock", monitoring.OutcomeSuccess)
	return ToggleResult{Changed: true, Seat: s.viewOf(seat)}, nil
}

// removeSelected drops one ID from the ordered selection.  Caller
// holds the mutex.
func (s *Session) removeSelected(seatID uint64) {
	for i, id := range s.selected {
		if id == seatID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}

// Refresh refetches the seat inventory and reconciles the selection
// against it.  A seat the server no longer reports as blocked by this
// user has expired (or was consumed elsewhere) and silently leaves the
// selection; the server owns lock lifetimes and the gateway runs no
// timers of its own.
func (s *Session) Refresh(ctx context.Context) error {
	grid, err := seatmap.NewLoader(s.api).Load(ctx, s.show.ScreenID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptGrid(grid)

	kept := s.selected[:0]
	for _, id := range s.selected {
		if seat, ok := s.seats[id]; ok && seat.BlockedBy(s.userID) {
			kept = append(kept, id)
		}
	}
	s.selected = kept
	return nil
}

// Release issues a best-effort unblock for every seat in the selection
// and empties it.  It is the teardown hook for an abandoned flow: when
// the user walks away the held seats should not wait out their server
// expiry.  Failures are logged and swallowed; the server will expire
// the blocks regardless.
func (s *Session) Release(ctx context.Context) int {
	s.mu.Lock()
	held := make([]uint64, len(s.selected))
	copy(held, s.selected)
	s.selected = s.selected[:0]
	s.mu.Unlock()

	if len(held) == 0 {
		return 0
	}
	if err := s.api.UnblockSeats(ctx, held); err != nil {
		log.Printf("reservation: best-effort release of %d seat(s) failed: %v", len(held), err)
		monitoring.TrackSeatOperation("release", monitoring.OutcomeError)
		return len(held)
	}
	monitoring.TrackSeatOperation("release", monitoring.OutcomeSuccess)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range held {
		if seat, ok := s.seats[id]; ok {
			seat.Status = model.SeatAvailable
			seat.BlockedByUserID = nil
			seat.BlockedUntil = nil
			s.seats[id] = seat
		}
	}
	return len(held)
}

// blockOutcome classifies a block failure for metrics: a structured
// backend refusal is contention, anything else is a transport or
// decoding error.
func blockOutcome(err error) string {
	if _, ok := backend.AsAPIError(err); ok {
		return monitoring.OutcomeConflict
	}
	return monitoring.OutcomeError
}
