package model

import "github.com/shopspring/decimal"

// Show represents a scheduled screening of a movie on a particular
// screen.  The backend denormalizes movie and cinema details into the
// show record so the booking flow can render a header without extra
// lookups.  ScreenID is the field the seat map fetch is derived from.
//
// Fields:
//  ID             – show identifier.
//  Date           – calendar date of the screening (YYYY-MM-DD).
//  Time           – start time (HH:MM).
//  TicketPrice    – price per seat; authoritative pricing stays with the backend.
//  IsActive       – whether the show is still bookable.
//  MovieID        – movie being screened.
//  ScreenID       – screen whose seat inventory applies to this show.
//  MovieTitle     – denormalized movie title for display.
//  ScreenName     – denormalized screen name for display.
//  CinemaID       – cinema the screen belongs to.
//  CinemaName     – denormalized cinema name for display.
//  CinemaLocation – denormalized cinema location for display.
type Show struct {
	ID             uint64          `json:"id"`
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	TicketPrice    decimal.Decimal `json:"ticket_price"`
	IsActive       bool            `json:"is_active"`
	MovieID        uint64          `json:"movie_id"`
	ScreenID       uint64          `json:"screen_id"`
	MovieTitle     string          `json:"movie_title"`
	ScreenName     string          `json:"screen_name"`
	CinemaID       uint64          `json:"cinema_id"`
	CinemaName     string          `json:"cinema_name"`
	CinemaLocation string          `json:"cinema_location"`
}
