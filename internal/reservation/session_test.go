package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

// fakeBackend is an in-memory stand-in for the authoritative seat
// service.  It enforces the same contention rule the real backend does:
// a BLOCK on a seat someone else holds (or a BOOKED seat) fails with a
// 409, and losers see the winner's record on the next fetch.
type fakeBackend struct {
	mu           sync.Mutex
	show         *model.Show
	seats        map[uint64]model.Seat
	order        []uint64
	blockCalls   int
	unblockCalls [][]uint64
	fetchCalls   int
	blockErr     error // forced error, takes precedence over contention
	unblockErr   error
	fetchErr     error
	blockGate    chan struct{} // when set, BlockSeats parks until it closes
}

func newFakeBackend(seats ...model.Seat) *fakeBackend {
	f := &fakeBackend{
		show: &model.Show{
			ID:          10,
			ScreenID:    3,
			TicketPrice: decimal.RequireFromString("150.00"),
			IsActive:    true,
		},
		seats: make(map[uint64]model.Seat),
	}
	for _, s := range seats {
		f.seats[s.ID] = s
		f.order = append(f.order, s.ID)
	}
	return f
}

func (f *fakeBackend) GetShow(ctx context.Context, showID uint64) (*model.Show, error) {
	return f.show, nil
}

func (f *fakeBackend) SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]model.Seat, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.seats[id])
	}
	return out, nil
}

func (f *fakeBackend) BlockSeats(ctx context.Context, userID uint64, seatIDs []uint64) ([]model.Seat, error) {
	if f.blockGate != nil {
		<-f.blockGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockCalls++
	if f.blockErr != nil {
		return nil, f.blockErr
	}
	for _, id := range seatIDs {
		if seat := f.seats[id]; seat.Status != model.SeatAvailable && !seat.BlockedBy(userID) {
			return nil, &backend.APIError{Status: 409, Message: "seat is not available"}
		}
	}
	out := make([]model.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat := f.seats[id]
		holder := userID
		seat.Status = model.SeatBlocked
		seat.BlockedByUserID = &holder
		f.seats[id] = seat
		out = append(out, seat)
	}
	return out, nil
}

func (f *fakeBackend) UnblockSeats(ctx context.Context, seatIDs []uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint64, len(seatIDs))
	copy(ids, seatIDs)
	f.unblockCalls = append(f.unblockCalls, ids)
	if f.unblockErr != nil {
		return f.unblockErr
	}
	for _, id := range seatIDs {
		seat := f.seats[id]
		seat.Status = model.SeatAvailable
		seat.BlockedByUserID = nil
		seat.BlockedUntil = nil
		f.seats[id] = seat
	}
	return nil
}

func seatRow(row string, startID uint64, n int) []model.Seat {
	seats := make([]model.Seat, 0, n)
	for i := 0; i < n; i++ {
		seats = append(seats, model.Seat{
			ID:         startID + uint64(i),
			SeatRow:    row,
			SeatNumber: uint32(i + 1),
			SeatCode:   row + string(rune('1'+i)),
			Status:     model.SeatAvailable,
			ScreenID:   3,
		})
	}
	return seats
}

func openSession(t *testing.T, f *fakeBackend, userID uint64) *Session {
	t.Helper()
	m := NewManager(f, decimal.RequireFromString("30.00"))
	sess, err := m.Session(context.Background(), userID, f.show.ID)
	require.NoError(t, err)
	return sess
}

func TestToggleSelectsAvailableSeat(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 4)...)
	sess := openSession(t, f, 42)

	res, err := sess.Toggle(context.Background(), 2)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, StateBlockedByMe, res.Seat.State)
	assert.True(t, res.Seat.Selectable)
	assert.Equal(t, []uint64{2}, sess.Selected())
	assert.Equal(t, 1, f.blockCalls)
}

func TestToggleReleasesHeldSeat(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 4)...)
	sess := openSession(t, f, 42)

	_, err := sess.Toggle(context.Background(), 2)
	require.NoError(t, err)

	res, err := sess.Toggle(context.Background(), 2)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, StateAvailable, res.Seat.State)
	assert.Empty(t, sess.Selected())
	require.Len(t, f.unblockCalls, 1)
	assert.Equal(t, []uint64{2}, f.unblockCalls[0])
}

func TestSeventhSelectionRejectedWithoutRequest(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 8)...)
	sess := openSession(t, f, 42)

	for id := uint64(1); id <= 6; id++ {
		_, err := sess.Toggle(context.Background(), id)
		require.NoError(t, err)
	}
	require.Equal(t, 6, f.blockCalls)

	res, err := sess.Toggle(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSelectionFull)
	assert.False(t, res.Changed)
	assert.Equal(t, 6, f.blockCalls, "the rejected click must not reach the backend")
	assert.Len(t, sess.Selected(), 6)
}

func TestToggleNoopOnBookedAndForeignSeats(t *testing.T) {
	other := uint64(7)
	seats := seatRow("A", 1, 3)
	seats[0].Status = model.SeatBooked
	seats[1].Status = model.SeatBlocked
	seats[1].BlockedByUserID = &other
	f := newFakeBackend(seats...)
	sess := openSession(t, f, 42)

	for _, id := range []uint64{1, 2} {
		res, err := sess.Toggle(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.False(t, res.Seat.Selectable)
	}
	assert.Zero(t, f.blockCalls)
	assert.Empty(t, f.unblockCalls)
}

func TestToggleNeverUnblocksUnselectedSeat(t *testing.T) {
	// A block held by this user but made outside the session (another
	// tab, an earlier session) is not in the local selection, so a
	// click on it must not fire an unblock.
	me := uint64(42)
	seats := seatRow("A", 1, 2)
	seats[0].Status = model.SeatBlocked
	seats[0].BlockedByUserID = &me
	f := newFakeBackend(seats...)
	sess := openSession(t, f, me)

	res, err := sess.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, StateBlockedByOther, res.Seat.State)
	assert.Empty(t, f.unblockCalls)
}

func TestToggleUnknownSeat(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 2)...)
	sess := openSession(t, f, 42)

	_, err := sess.Toggle(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestBlockConflictLeavesSelectionUntouched(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 3)...)
	sess := openSession(t, f, 42)

	// Someone else grabs seat 1 between our fetch and our click.
	other := uint64(7)
	f.mu.Lock()
	seat := f.seats[1]
	seat.Status = model.SeatBlocked
	seat.BlockedByUserID = &other
	f.seats[1] = seat
	f.mu.Unlock()

	res, err := sess.Toggle(context.Background(), 1)
	require.Error(t, err)
	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.Status)
	assert.False(t, res.Changed)
	assert.Empty(t, sess.Selected())
}

func TestDuplicateClickDroppedWhileRequestInFlight(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 2)...)
	sess := openSession(t, f, 42)

	gate := make(chan struct{})
	f.blockGate = gate

	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := sess.Toggle(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, res.Changed)
	}()

	// Wait until the first toggle has marked the seat pending and is
	// parked inside BlockSeats.
	require.Eventually(t, func() bool {
		return sess.View().Rows[0].Seats[0].Pending
	}, testWait, testTick)

	res, err := sess.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Changed, "second click on a pending seat is dropped")
	assert.True(t, res.Seat.Pending)

	close(gate)
	<-done

	assert.Equal(t, 1, f.blockCalls, "only one request may hit the wire")
	assert.Equal(t, []uint64{1}, sess.Selected())
}

func TestContendedSeatHasOneWinner(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 1)...)
	alice := openSession(t, f, 1)
	bob := openSession(t, f, 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, sess := range []*Session{alice, bob} {
		wg.Add(1)
		go func(i int, sess *Session) {
			defer wg.Done()
			_, errs[i] = sess.Toggle(context.Background(), 1)
		}(i, sess)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			_, ok := backend.AsAPIError(err)
			assert.True(t, ok, "loser must see the backend's refusal, got %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, len(alice.Selected())+len(bob.Selected()))
}

func TestRefreshDropsExpiredHolds(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 3)...)
	sess := openSession(t, f, 42)

	_, err := sess.Toggle(context.Background(), 1)
	require.NoError(t, err)
	_, err = sess.Toggle(context.Background(), 2)
	require.NoError(t, err)

	// The server expires the block on seat 1.
	f.mu.Lock()
	seat := f.seats[1]
	seat.Status = model.SeatAvailable
	seat.BlockedByUserID = nil
	f.seats[1] = seat
	f.mu.Unlock()

	require.NoError(t, sess.Refresh(context.Background()))
	assert.Equal(t, []uint64{2}, sess.Selected(), "the expired seat silently leaves the selection")
}

func TestReleaseUnblocksExactlyHeldSeats(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 4)...)
	sess := openSession(t, f, 42)

	_, err := sess.Toggle(context.Background(), 1)
	require.NoError(t, err)
	_, err = sess.Toggle(context.Background(), 3)
	require.NoError(t, err)

	released := sess.Release(context.Background())
	assert.Equal(t, 2, released)
	assert.Empty(t, sess.Selected())
	require.Len(t, f.unblockCalls, 1)
	assert.ElementsMatch(t, []uint64{1, 3}, f.unblockCalls[0])

	// Releasing again is a no-op and sends nothing.
	assert.Zero(t, sess.Release(context.Background()))
	assert.Len(t, f.unblockCalls, 1)
}

func TestViewSummaryPrices(t *testing.T) {
	f := newFakeBackend(seatRow("A", 1, 4)...)
	sess := openSession(t, f, 42)

	for _, id := range []uint64{1, 2, 3} {
		_, err := sess.Toggle(context.Background(), id)
		require.NoError(t, err)
	}

	v := sess.View()
	assert.Equal(t, 3, v.Summary.SeatCount)
	assert.True(t, v.Summary.TicketTotal.Equal(decimal.RequireFromString("450.00")))
	assert.True(t, v.Summary.ServiceFee.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, v.Summary.Total.Equal(decimal.RequireFromString("480.00")))
	require.Len(t, v.Selected, 3)
	assert.Equal(t, StateBlockedByMe, v.Selected[0].State)
}

func TestViewPreservesServerOrder(t *testing.T) {
	seats := append(seatRow("B", 1, 2), seatRow("A", 3, 2)...)
	f := newFakeBackend(seats...)
	sess := openSession(t, f, 42)

	v := sess.View()
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "B", v.Rows[0].Label)
	assert.Equal(t, "A", v.Rows[1].Label)
	assert.Equal(t, uint64(3), v.Rows[1].Seats[0].ID)
}
