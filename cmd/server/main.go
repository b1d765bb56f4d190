package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"           // HTTP client for the booking backend
	"github.com/iliyamo/cinema-booking-gateway/internal/booking"           // Booking finalization
	"github.com/iliyamo/cinema-booking-gateway/internal/config"            // Internal config loader
	"github.com/iliyamo/cinema-booking-gateway/internal/handler"           // HTTP handlers
	"github.com/iliyamo/cinema-booking-gateway/internal/middleware"        // Request ID, cache and rate-limit middleware
	"github.com/iliyamo/cinema-booking-gateway/internal/queue"             // Booking confirmation consumer
	"github.com/iliyamo/cinema-booking-gateway/internal/reservation"       // Seat session manager
	"github.com/iliyamo/cinema-booking-gateway/internal/router"            // Internal router setup
	queue_publisher "github.com/iliyamo/cinema-booking-gateway/internal/service" // Booking event publisher
)

func main() {
	if err := godotenv.Load(); err != nil { // Load .env if present; real deployments set the environment directly
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load() // Load environment config

	api := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout) // Client for the authoritative backend API
	sessions := reservation.NewManager(api, cfg.ServiceFee)    // Per-user seat sessions
	finalizer := booking.NewFinalizer(api, queue_publisher.PublishBookingConfirmed)

	rdb := config.NewRedisClient() // Optional: nil disables cache and rate limiting
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	go func() { // Consume booking.confirmed events alongside the server
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.RequestID()) // Correlate gateway and backend logs

	router.RegisterRoutes(e)
	router.RegisterBrowse(e, handler.NewBrowseHandler(api), cacheMW)
	router.RegisterSeatFlow(e, handler.NewSeatSessionHandler(sessions, finalizer), cfg.JWTSecret, limitMW)
	router.RegisterBookings(e, handler.NewBookingHandler(api), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(api), cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
