package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
	"github.com/iliyamo/cinema-booking-gateway/internal/model"
	"github.com/iliyamo/cinema-booking-gateway/internal/queue"
	"github.com/iliyamo/cinema-booking-gateway/internal/reservation"
)

type stubCreator struct {
	gotUserID  uint64
	gotShowID  uint64
	gotSeatIDs []uint64
	booking    *model.Booking
	err        error
}

func (s *stubCreator) CreateBooking(ctx context.Context, userID, showID uint64, seatIDs []uint64) (*model.Booking, error) {
	s.gotUserID = userID
	s.gotShowID = showID
	s.gotSeatIDs = seatIDs
	return s.booking, s.err
}

func testShow() *model.Show {
	return &model.Show{
		ID:         10,
		Date:       "2026-09-01",
		Time:       "19:30",
		IsActive:   true,
		MovieTitle: "Interstellar",
		ScreenName: "Screen 2",
		CinemaName: "Galaxy",
	}
}

func testSeats(ids ...uint64) []model.Seat {
	seats := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		seats = append(seats, model.Seat{ID: id, SeatCode: "A" + string(rune('0'+id))})
	}
	return seats
}

func TestFinalizeBooksAllSelectedSeats(t *testing.T) {
	stub := &stubCreator{booking: &model.Booking{
		ID:               77,
		BookingReference: "BK-77",
		TotalAmount:      decimal.RequireFromString("330.00"),
		Status:           model.BookingConfirmed,
	}}

	events := make(chan queue.BookingConfirmedEvent, 1)
	f := NewFinalizer(stub, func(ctx context.Context, e queue.BookingConfirmedEvent) error {
		events <- e
		return nil
	})

	booked, err := f.Finalize(context.Background(), Request{
		UserID: 42,
		Show:   testShow(),
		Seats:  testSeats(1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(77), booked.ID)
	assert.Equal(t, uint64(42), stub.gotUserID)
	assert.Equal(t, uint64(10), stub.gotShowID)
	assert.Equal(t, []uint64{1, 2}, stub.gotSeatIDs)

	select {
	case e := <-events:
		assert.Equal(t, uint64(77), e.BookingID)
		assert.Equal(t, "BK-77", e.BookingReference)
		assert.Equal(t, []string{"A1", "A2"}, e.SeatCodes)
		assert.Equal(t, "330", e.TotalAmount)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation event was never published")
	}
}

func TestFinalizeRejectsEmptySelection(t *testing.T) {
	stub := &stubCreator{}
	f := NewFinalizer(stub, nil)

	_, err := f.Finalize(context.Background(), Request{UserID: 42, Show: testShow()})
	assert.ErrorIs(t, err, reservation.ErrSelectionEmpty)
	assert.Empty(t, stub.gotSeatIDs, "no backend call for an empty selection")
}

func TestFinalizeRejectsOversizedSelection(t *testing.T) {
	f := NewFinalizer(&stubCreator{}, nil)
	_, err := f.Finalize(context.Background(), Request{
		UserID: 42,
		Show:   testShow(),
		Seats:  testSeats(1, 2, 3, 4, 5, 6, 7),
	})
	assert.ErrorIs(t, err, reservation.ErrSelectionFull)
}

func TestFinalizeConflictPropagatesBackendError(t *testing.T) {
	stub := &stubCreator{err: &backend.APIError{Status: 409, Message: "seat A1 is no longer available"}}
	published := false
	f := NewFinalizer(stub, func(ctx context.Context, e queue.BookingConfirmedEvent) error {
		published = true
		return nil
	})

	_, err := f.Finalize(context.Background(), Request{
		UserID: 42,
		Show:   testShow(),
		Seats:  testSeats(1),
	})
	require.Error(t, err)
	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.Status)
	assert.False(t, published, "no event for a failed booking")
}

func TestFinalizePublishFailureDoesNotFailBooking(t *testing.T) {
	stub := &stubCreator{booking: &model.Booking{ID: 77}}
	done := make(chan struct{})
	f := NewFinalizer(stub, func(ctx context.Context, e queue.BookingConfirmedEvent) error {
		close(done)
		return errors.New("broker down")
	})

	booked, err := f.Finalize(context.Background(), Request{
		UserID: 42,
		Show:   testShow(),
		Seats:  testSeats(1),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(77), booked.ID)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher was never invoked")
	}
}
