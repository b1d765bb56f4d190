package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-gateway/internal/backend"
)

// BrowseHandler serves the read-only catalog surface that leads the
// user to the seat screen: cinemas, the movies playing at a cinema and
// the shows for a movie.  Everything is fetched from the backend API;
// the route group wraps these handlers with the Redis response cache.
type BrowseHandler struct {
	API *backend.Client
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(api *backend.Client) *BrowseHandler {
	if api == nil {
		panic("nil backend client passed to NewBrowseHandler")
	}
	return &BrowseHandler{API: api}
}

// ListCinemas handles GET /v1/cinemas.
func (h *BrowseHandler) ListCinemas(c echo.Context) error {
	cinemas, err := h.API.ListCinemas(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cinemas)
}

// GetCinema handles GET /v1/cinemas/:id.
func (h *BrowseHandler) GetCinema(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	cinema, err := h.API.GetCinema(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cinema)
}

// MoviesByCinema handles GET /v1/cinemas/:id/movies.
func (h *BrowseHandler) MoviesByCinema(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	movies, err := h.API.MoviesByCinema(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie handles GET /v1/movies/:id.
func (h *BrowseHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.API.GetMovie(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// ShowsByMovie handles GET /v1/movies/:id/shows.  Inactive shows are
// filtered out so the client never offers a show that would be
// rejected at seat-session open.
func (h *BrowseHandler) ShowsByMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	shows, err := h.API.ShowsByMovie(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	active := shows[:0]
	for _, s := range shows {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return c.JSON(http.StatusOK, active)
}

// GetShow handles GET /v1/shows/:id.
func (h *BrowseHandler) GetShow(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	show, err := h.API.GetShow(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, show)
}
