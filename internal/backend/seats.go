package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

// SeatsByScreen fetches the complete seat inventory of one screen.
// Row and in-row ordering in the returned slice is the backend's and
// must be preserved by callers; there is no client-side re-sort.
func (c *Client) SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error) {
	var seats []model.Seat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/seats/screen/%d", screenID), nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// blockRequest is the wire body of POST /api/seats/block.
type blockRequest struct {
	UserID  uint64   `json:"user_id"`
	SeatIDs []uint64 `json:"seat_ids"`
}

// BlockSeats asks the backend to soft-reserve the given seats for the
// user.  The backend is the single arbiter of contention: on success it
// returns the updated seat records, and callers must adopt those rather
// than assume the request seats were granted unchanged.  On conflict
// the error carries the backend's message (e.g. which seat was taken).
func (c *Client) BlockSeats(ctx context.Context, userID uint64, seatIDs []uint64) ([]model.Seat, error) {
	var seats []model.Seat
	req := blockRequest{UserID: userID, SeatIDs: seatIDs}
	if err := c.do(ctx, http.MethodPost, "/api/seats/block", req, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// UnblockSeats releases blocks on the given seats.  The request body is
// a bare JSON array of seat IDs; a 2xx response has no required body.
func (c *Client) UnblockSeats(ctx context.Context, seatIDs []uint64) error {
	return c.do(ctx, http.MethodPost, "/api/seats/unblock", seatIDs, nil)
}
