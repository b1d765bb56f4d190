// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when the gateway finalizes a
// booking against the backend.  It carries enough denormalized detail
// for downstream consumers to log, notify, or feed analytics without
// calling the backend again.  TotalAmount is the backend's
// authoritative charge as a decimal string; the display-only service
// fee is not part of it.
type BookingConfirmedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	BookingReference string   `json:"booking_reference"`
	UserID           uint64   `json:"user_id"`
	ShowID           uint64   `json:"show_id"`
	CinemaName       string   `json:"cinema_name"`
	ScreenName       string   `json:"screen_name"`
	MovieTitle       string   `json:"movie_title"`
	ShowDate         string   `json:"show_date"`
	ShowTime         string   `json:"show_time"`
	SeatCodes        []string `json:"seats"`
	TotalAmount      string   `json:"total_amount"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
