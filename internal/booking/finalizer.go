// Package booking converts a confirmed seat selection into a persisted
// booking.  Creation is a single atomic backend call: either every seat
// in the selection becomes BOOKED or none does, so a selection that
// partially expired fails whole and stays intact for the user to
// adjust and retry.
package booking

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
	"github.com/iliyamo/cinema-booking-gateway/internal/model"
	"github.com/iliyamo/cinema-booking-gateway/internal/monitoring"
	"github.com/iliyamo/cinema-booking-gateway/internal/queue"
	"github.com/iliyamo/cinema-booking-gateway/internal/reservation"
)

// API is the single backend operation finalization needs.
type API interface {
	CreateBooking(ctx context.Context, userID, showID uint64, seatIDs []uint64) (*model.Booking, error)
}

// Publisher emits a booking-confirmed event.  Publication is
// best-effort: a broker failure is logged, never surfaced, and never
// undoes the booking.
type Publisher func(ctx context.Context, event queue.BookingConfirmedEvent) error

// Request carries everything finalization needs from the seat session:
// the show the seats belong to and the ordered local selection.
// The caller guarantees every seat ID was successfully blocked by the
// user; the backend re-checks regardless.
type Request struct {
	UserID uint64
	Show   *model.Show
	Seats  []model.Seat // ordered selection, as last reported by the server
}

// Finalizer creates bookings and announces them on the broker.
type Finalizer struct {
	api     API
	publish Publisher // nil disables event publication
}

// NewFinalizer constructs a Finalizer.  publish may be nil when no
// broker is configured.
func NewFinalizer(api API, publish Publisher) *Finalizer {
	if api == nil {
		panic("nil backend API passed to NewFinalizer")
	}
	return &Finalizer{api: api, publish: publish}
}

// Finalize books every seat in the request in one atomic call and
// returns the backend's booking record.  On failure nothing is booked
// and the caller's selection must be left untouched so the user can
// retry or adjust from the seat screen.
func (f *Finalizer) Finalize(ctx context.Context, req Request) (*model.Booking, error) {
	if len(req.Seats) == 0 {
		return nil, reservation.ErrSelectionEmpty
	}
	if len(req.Seats) > reservation.MaxSelection {
		return nil, reservation.ErrSelectionFull
	}

	seatIDs := make([]uint64, 0, len(req.Seats))
	for _, seat := range req.Seats {
		seatIDs = append(seatIDs, seat.ID)
	}

	booked, err := f.api.CreateBooking(ctx, req.UserID, req.Show.ID, seatIDs)
	if err != nil {
		if _, ok := backend.AsAPIError(err); ok {
			monitoring.TrackBooking(monitoring.OutcomeConflict)
		} else {
			monitoring.TrackBooking(monitoring.OutcomeError)
		}
		return nil, err
	}
	monitoring.TrackBooking(monitoring.OutcomeSuccess)

	if f.publish != nil {
		f.announce(req, booked)
	}
	return booked, nil
}

// announce publishes the confirmation event in the background so the
// user's response never waits on the broker.
func (f *Finalizer) announce(req Request, booked *model.Booking) {
	codes := make([]string, 0, len(req.Seats))
	for _, seat := range req.Seats {
		codes = append(codes, seat.SeatCode)
	}
	event := queue.BookingConfirmedEvent{
		BookingID:        booked.ID,
		BookingReference: booked.BookingReference,
		UserID:           req.UserID,
		ShowID:           req.Show.ID,
		CinemaName:       req.Show.CinemaName,
		ScreenName:       req.Show.ScreenName,
		MovieTitle:       req.Show.MovieTitle,
		ShowDate:         req.Show.Date,
		ShowTime:         req.Show.Time,
		SeatCodes:        codes,
		TotalAmount:      booked.TotalAmount.String(),
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := f.publish(ctx, event); err != nil {
			log.Printf("booking: publish confirmation for booking %d failed: %v", booked.ID, err)
		}
	}()
}
