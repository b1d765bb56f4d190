package seatmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

type stubSource struct {
	seats []model.Seat
	err   error
}

func (s stubSource) SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error) {
	return s.seats, s.err
}

func TestGroupPreservesServerOrder(t *testing.T) {
	seats := []model.Seat{
		{ID: 1, SeatRow: "B", SeatNumber: 1},
		{ID: 2, SeatRow: "B", SeatNumber: 2},
		{ID: 3, SeatRow: "A", SeatNumber: 1},
		{ID: 4, SeatRow: "B", SeatNumber: 3},
	}

	m := Group(7, seats)

	require.Len(t, m.Rows, 2)
	assert.Equal(t, uint64(7), m.ScreenID)
	// Row order is first-seen, not alphabetical.
	assert.Equal(t, "B", m.Rows[0].Label)
	assert.Equal(t, "A", m.Rows[1].Label)
	// In-row order follows the flat list even when a row is interleaved.
	assert.Equal(t, []uint64{1, 2, 4}, ids(m.Rows[0].Seats))
	assert.Equal(t, []uint64{3}, ids(m.Rows[1].Seats))
}

func TestGroupEmptyInventory(t *testing.T) {
	m := Group(7, nil)
	assert.Empty(t, m.Rows)
}

func TestLoadRejectsZeroScreenID(t *testing.T) {
	l := NewLoader(stubSource{})
	_, err := l.Load(context.Background(), 0)
	assert.Error(t, err)
}

func TestLoadPropagatesSourceError(t *testing.T) {
	want := errors.New("backend down")
	l := NewLoader(stubSource{err: want})
	_, err := l.Load(context.Background(), 3)
	assert.ErrorIs(t, err, want)
}

func TestLoadGroups(t *testing.T) {
	l := NewLoader(stubSource{seats: []model.Seat{
		{ID: 1, SeatRow: "A"},
		{ID: 2, SeatRow: "A"},
	}})
	m, err := l.Load(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	assert.Len(t, m.Rows[0].Seats, 2)
}

func ids(seats []model.Seat) []uint64 {
	out := make([]uint64, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.ID)
	}
	return out
}
