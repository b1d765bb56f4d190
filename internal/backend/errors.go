// Package backend implements the HTTP client for the cinema backend
// API.  The backend owns all persistent state: seat inventory, blocks
// and their expiry, bookings and the catalog.  This package is the only
// place the gateway talks to it, and every higher layer treats the
// responses here as authoritative.
package backend

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the backend cannot be reached at the
// transport level (dial failure, timeout, connection reset).  Handlers
// translate it into a 502 response.
var ErrUnavailable = errors.New("backend unavailable")

// APIError carries a structured non-2xx response from the backend.  The
// Message field is the server's own `message` value and is surfaced to
// the user verbatim, per the error contract: the backend's wording is
// the source of truth for conflicts such as "seat A4 is not available".
type APIError struct {
	Status  int    // HTTP status code returned by the backend
	Message string // server-provided message, may be empty
}

// Error renders the status and message for logs; user-facing surfaces
// should prefer the Message field on its own.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// AsAPIError unwraps err into an *APIError when possible.  It is a
// convenience for handlers that need the backend's status and message.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
