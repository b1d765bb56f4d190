package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

// Catalog reads consumed by the browse flow.  These are plain GETs; the
// browse handlers put a Redis response cache in front of them, so no
// caching happens at this layer.

// GetShow fetches one show with its denormalized movie/screen/cinema
// fields.  The seat map fetch is derived from the returned ScreenID.
func (c *Client) GetShow(ctx context.Context, showID uint64) (*model.Show, error) {
	var show model.Show
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/shows/%d", showID), nil, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// ListCinemas returns all cinemas.
func (c *Client) ListCinemas(ctx context.Context) ([]model.Cinema, error) {
	var cinemas []model.Cinema
	if err := c.do(ctx, http.MethodGet, "/api/cinemas", nil, &cinemas); err != nil {
		return nil, err
	}
	return cinemas, nil
}

// GetCinema returns one cinema by ID.
func (c *Client) GetCinema(ctx context.Context, cinemaID uint64) (*model.Cinema, error) {
	var cinema model.Cinema
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cinemas/%d", cinemaID), nil, &cinema); err != nil {
		return nil, err
	}
	return &cinema, nil
}

// MoviesByCinema lists the movies currently showing at a cinema.
func (c *Client) MoviesByCinema(ctx context.Context, cinemaID uint64) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cinemas/%d/movies", cinemaID), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie returns one movie by ID.
func (c *Client) GetMovie(ctx context.Context, movieID uint64) (*model.Movie, error) {
	var movie model.Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// ShowsByMovie lists the scheduled shows of a movie across screens.
func (c *Client) ShowsByMovie(ctx context.Context, movieID uint64) ([]model.Show, error) {
	var shows []model.Show
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/shows/movie/%d", movieID), nil, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}
