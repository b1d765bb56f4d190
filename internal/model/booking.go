package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a persisted booking as returned by the backend.  It is
// created atomically for all seats in one request; partial bookings do
// not exist.  TotalAmount is the backend's authoritative charge
// (ticket price × seat count); the gateway's service fee is display
// only and never part of this amount.
//
// Fields:
//  ID               – booking identifier.
//  BookingReference – human-facing reference code.
//  TotalAmount      – authoritative total charged by the backend.
//  BookingDate      – when the booking was created.
//  Status           – CONFIRMED or CANCELLED.
//  UserID           – user who booked.
//  ShowID           – show the seats were booked for.
//  SeatIDs          – IDs of the booked seats.
//  Seats            – expanded seat records when the backend includes them.
//  Show             – expanded show record when the backend includes it.
type Booking struct {
	ID               uint64          `json:"id"`
	BookingReference string          `json:"booking_reference"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	BookingDate      *time.Time      `json:"booking_date"`
	Status           BookingStatus   `json:"status"`
	UserID           uint64          `json:"user_id"`
	ShowID           uint64          `json:"show_id"`
	SeatIDs          []uint64        `json:"seat_ids"`
	Seats            []Seat          `json:"seats,omitempty"`
	Show             *Show           `json:"show,omitempty"`
}
