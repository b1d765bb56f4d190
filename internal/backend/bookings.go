package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

// bookingRequest is the wire body of POST /api/bookings.
type bookingRequest struct {
	UserID  uint64   `json:"user_id"`
	ShowID  uint64   `json:"show_id"`
	SeatIDs []uint64 `json:"seat_ids"`
}

// CreateBooking converts blocked seats into a permanent booking in one
// atomic call.  If any seat was released, expired or taken before the
// request lands, the backend rejects the whole set and no seat is
// booked; the error then carries the backend's conflict message.
func (c *Client) CreateBooking(ctx context.Context, userID, showID uint64, seatIDs []uint64) (*model.Booking, error) {
	var booking model.Booking
	req := bookingRequest{UserID: userID, ShowID: showID, SeatIDs: seatIDs}
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBooking fetches one booking with expanded show and seat details.
func (c *Client) GetBooking(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	var booking model.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/%d", bookingID), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingsByUser lists a user's booking history, newest first as
// ordered by the backend.
func (c *Client) BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/user/%d", userID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels a confirmed booking; the backend frees the
// seats as part of the same operation.
func (c *Client) CancelBooking(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	var booking model.Booking
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
