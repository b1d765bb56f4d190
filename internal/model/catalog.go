package model

// Catalog records browsed by end users and managed through the admin
// console.  These are thin mirrors of the backend's list/detail
// responses; the gateway never derives or validates anything from them
// beyond what a screen needs to render.

// Cinema is a venue with one or more screens.
type Cinema struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	ContactInfo string `json:"contact_info"`
}

// Movie is a film that can be scheduled on any screen.
type Movie struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	DurationMin uint32 `json:"duration_minutes"`
	Rating      string `json:"rating"`
	PosterURL   string `json:"poster_url"`
}

// Screen is an auditorium inside a cinema; its seat inventory is the
// grid the reservation flow operates on.
type Screen struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	CinemaID   uint64 `json:"cinema_id"`
	TotalSeats uint32 `json:"total_seats"`
}

// User is the backend's user record.  The gateway consumes it for
// booking history and the admin user console; it never stores one.
type User struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
