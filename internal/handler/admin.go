package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
)

// maxAdminBody caps the request body accepted on the admin proxy.
const maxAdminBody = 1 << 20 // 1 MiB

// AdminHandler forwards catalog management calls (cinemas, movies,
// screens, shows, users, bookings) to the backend API unchanged.  The
// gateway contributes authentication only: the route group requires an
// ADMIN role before any of this runs, and the backend stays the single
// authority on the data itself.
type AdminHandler struct {
	API *backend.Client
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(api *backend.Client) *AdminHandler {
	if api == nil {
		panic("nil backend client passed to NewAdminHandler")
	}
	return &AdminHandler{API: api}
}

// Forward relays the incoming request to the backend under /api,
// echoing back whatever status and body the backend produced.  It is
// registered with echo.Any so one handler covers the whole CRUD
// surface.
func (h *AdminHandler) Forward(c echo.Context) error {
	req := c.Request()

	// /v1/admin/cinemas/3 -> /api/cinemas/3
	path := strings.TrimPrefix(req.URL.Path, "/v1/admin")
	if path == "" || path == "/" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	path = "/api" + path
	if q := req.URL.RawQuery; q != "" {
		path += "?" + q
	}

	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(io.LimitReader(req.Body, maxAdminBody+1))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to read request body"})
		}
		if len(b) > maxAdminBody {
			return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "request body too large"})
		}
		body = b
	}

	status, payload, err := h.API.Proxy(req.Context(), req.Method, path, body)
	if err != nil {
		return writeError(c, err)
	}
	if len(payload) == 0 {
		return c.NoContent(status)
	}
	return c.JSONBlob(status, payload)
}
