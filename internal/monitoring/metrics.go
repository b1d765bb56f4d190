// Package monitoring defines the gateway's Prometheus metrics.  Seat
// contention is the interesting signal here: how often blocks are
// attempted, how often the backend refuses them, and how bookings
// finish.  All collectors are registered via promauto on the default
// registry and exposed on /metrics.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	seatOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_operations_total",
			Help: "Seat block/unblock attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Booking finalizations by outcome",
		},
		[]string{"outcome"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seat_sessions_active",
			Help: "Currently open seat-selection sessions",
		},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Round-trip time of backend API calls",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route", "transport"},
	)
)

// Outcome labels used for seat and booking operations.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
	OutcomeRejected = "rejected" // refused client-side, no request sent
)

// TrackSeatOperation records one block or unblock attempt.
func TrackSeatOperation(operation, outcome string) {
	seatOperations.WithLabelValues(operation, outcome).Inc()
}

// TrackBooking records one finalization attempt.
func TrackBooking(outcome string) {
	bookingOperations.WithLabelValues(outcome).Inc()
}

// SessionOpened and SessionClosed keep the active-session gauge in step
// with the reservation manager.
func SessionOpened() { activeSessions.Inc() }
func SessionClosed() { activeSessions.Dec() }

// ObserveBackendRequest records one backend round trip.  ok is false
// only for transport-level failures; a non-2xx response still counts as
// a completed round trip.
func ObserveBackendRequest(method, route string, d time.Duration, ok bool) {
	transport := "ok"
	if !ok {
		transport = "failed"
	}
	backendRequestDuration.WithLabelValues(method, route, transport).Observe(d.Seconds())
}
