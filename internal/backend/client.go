package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/cinema-booking-gateway/internal/monitoring"
)

// Client is a thin JSON client for the backend API.  All methods take a
// context so callers control cancellation; a request ID stored in the
// context (see RequestIDFrom) is forwarded as X-Request-ID so gateway
// and backend logs can be correlated.
type Client struct {
	baseURL string
	hc      *http.Client
}

// ctxKey is the private context key type used by this package.
type ctxKey int

// requestIDKey stores the correlation ID for outgoing requests.
const requestIDKey ctxKey = iota

// WithRequestID returns a context carrying a correlation ID that will
// be attached to every backend request made with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the correlation ID from ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// New constructs a Client for the given base URL (scheme://host:port).
// A zero timeout falls back to ten seconds; the booking flow should
// never hang on a dead backend longer than that.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// do performs one round trip: marshal in (when non-nil), send, check
// the status, decode into out (when non-nil).  A transport failure is
// wrapped in ErrUnavailable; a non-2xx response is decoded into an
// *APIError carrying the backend's message verbatim.  No retries: per
// the error contract every retry is a fresh user action.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	monitoring.ObserveBackendRequest(method, metricRoute(path), time.Since(start), err == nil)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// metricRoute collapses numeric path segments to ":id" so metric
// labels stay low-cardinality regardless of entity IDs.
func metricRoute(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		numeric := p != ""
		for _, r := range p {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// decodeAPIError extracts the backend's `{message}` body.  A body that
// is not JSON (or has no message) still yields an APIError so the
// caller always sees the status.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}

// Proxy forwards an admin console request as-is and returns the
// backend's status and raw body.  The gateway performs no validation
// here beyond what the router already checked; the backend stays the
// validator of record for all CRUD.
func (c *Client) Proxy(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("backend: build request: %w", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	start := time.Now()
	resp, err := c.hc.Do(req)
	monitoring.ObserveBackendRequest(method, metricRoute(path), time.Since(start), err == nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	out, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("backend: read %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, out, nil
}
