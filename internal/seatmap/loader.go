// Package seatmap loads and shapes the seat inventory of a screen.
// The backend returns seats as a flat, already-ordered list; this
// package groups them into rows for rendering without re-sorting
// anything, since row and in-row ordering are authoritative from the
// server.
package seatmap

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

// SeatSource is the single backend operation the loader needs.  The
// concrete implementation is *backend.Client; tests substitute a mock.
type SeatSource interface {
	SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error)
}

// Row is one row of the seat grid: its label and the seats in server
// order.
type Row struct {
	Label string       `json:"row"`
	Seats []model.Seat `json:"seats"`
}

// Map is the seat grid of one screen grouped by row, in first-seen row
// order.
type Map struct {
	ScreenID uint64 `json:"screen_id"`
	Rows     []Row  `json:"rows"`
}

// Loader fetches seat inventories.  It has no state beyond its source;
// re-fetching is the caller's policy (the reservation session fetches
// once when the show's screen becomes known, and again on refresh).
type Loader struct {
	source SeatSource
}

// NewLoader constructs a Loader around the given source.
func NewLoader(source SeatSource) *Loader {
	if source == nil {
		panic("nil seat source passed to NewLoader")
	}
	return &Loader{source: source}
}

// Load fetches the full inventory for screenID and groups it by row.
// Any fetch failure is returned as-is so callers can surface the
// backend's message; nothing is rendered from a failed load.
func (l *Loader) Load(ctx context.Context, screenID uint64) (*Map, error) {
	if screenID == 0 {
		return nil, fmt.Errorf("seatmap: invalid screen id %d", screenID)
	}
	seats, err := l.source.SeatsByScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	return Group(screenID, seats), nil
}

// Group arranges a flat seat list into rows, preserving the order in
// which rows and seats appear.  It is a pure function so the grouping
// rule can be tested without a backend.
func Group(screenID uint64, seats []model.Seat) *Map {
	m := &Map{ScreenID: screenID}
	index := make(map[string]int)
	for _, seat := range seats {
		i, ok := index[seat.SeatRow]
		if !ok {
			i = len(m.Rows)
			index[seat.SeatRow] = i
			m.Rows = append(m.Rows, Row{Label: seat.SeatRow})
		}
		m.Rows[i].Seats = append(m.Rows[i].Seats, seat)
	}
	return m
}
