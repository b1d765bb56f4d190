package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/cinema-booking-gateway/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/cinema-booking-gateway/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check used by load balancers and the
// Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterBrowse registers the unauthenticated catalog endpoints under /v1.
// These are pure backend reads and sit behind the response cache when one
// is configured; pass nil middleware to skip caching.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Browse flow: pick a cinema, then a movie playing there, then a show.
	g.GET("/cinemas", b.ListCinemas)
	g.GET("/cinemas/:id", b.GetCinema)
	g.GET("/cinemas/:id/movies", b.MoviesByCinema)
	g.GET("/movies/:id", b.GetMovie)
	g.GET("/movies/:id/shows", b.ShowsByMovie)
	g.GET("/shows/:id", b.GetShow)
}

// RegisterSeatFlow registers the seat-selection endpoints under /v1.  Every
// route requires a valid access token because seat blocks are attributed to
// the authenticated user; the seat map and toggle routes additionally sit
// behind the token-bucket limiter to keep one aggressive client from
// hammering the shared inventory.
func RegisterSeatFlow(e *echo.Echo, s *handler.SeatSessionHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/shows")
	g.Use(middleware.JWTAuth(jwtSecret))
	if limiter != nil {
		g.Use(limiter)
	}
	// The seat map opens (or resumes) the user's session for the show.
	g.GET("/:id/seats", s.GetSeatMap)
	// One toggle is one click on a seat.
	g.POST("/:id/seats/:seatId/toggle", s.ToggleSeat)
	// Confirm turns the current selection into a booking atomically.
	g.POST("/:id/confirm", s.ConfirmBooking)
	// Release is the teardown hook for an abandoned selection.
	g.DELETE("/:id/selection", s.ReleaseSelection)
}

// RegisterBookings registers the authenticated booking-history endpoints
// under /v1/bookings.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("", b.MyBookings)
	g.GET("/:id", b.GetBooking)
	g.PUT("/:id/cancel", b.CancelBooking)
}

// RegisterAdmin registers the catalog-management proxy under /v1/admin.
// Requests are forwarded to the backend verbatim once the caller has proven
// an ADMIN role, so a single Any route covers the whole CRUD surface.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.Any("/*", a.Forward)
}
