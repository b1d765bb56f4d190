package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

func TestBlockSeatsRequestShape(t *testing.T) {
	var got struct {
		UserID  uint64   `json:"user_id"`
		SeatIDs []uint64 `json:"seat_ids"`
	}
	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/seats/block", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode([]model.Seat{{ID: 5, Status: model.SeatBlocked}})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	ctx := WithRequestID(context.Background(), "req-123")
	seats, err := c.BlockSeats(ctx, 42, []uint64{5})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), got.UserID)
	assert.Equal(t, []uint64{5}, got.SeatIDs)
	assert.Equal(t, "req-123", gotRequestID)
	require.Len(t, seats, 1)
	assert.Equal(t, model.SeatBlocked, seats[0].Status)
}

func TestUnblockSeatsSendsBareArray(t *testing.T) {
	var got []uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/seats/unblock", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	require.NoError(t, c.UnblockSeats(context.Background(), []uint64{1, 2}))
	assert.Equal(t, []uint64{1, 2}, got)
}

func TestErrorResponseCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "seat A4 is not available"})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.BlockSeats(context.Background(), 42, []uint64{5})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "seat A4 is not available", apiErr.Message)
}

func TestErrorResponseWithoutJSONBodyStillYieldsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.GetShow(context.Background(), 1)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestTransportFailureWrapsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening

	c := New(srv.URL, 0)
	_, err := c.SeatsByScreen(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, ok := AsAPIError(err)
	assert.False(t, ok, "a transport failure is not a structured refusal")
}

func TestProxyForwardsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/movies/9", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	status, body, err := c.Proxy(context.Background(), http.MethodPut, "/api/movies/9", []byte(`{"title":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"id":9}`, string(body))
}

func TestMetricRouteCollapsesIDs(t *testing.T) {
	cases := map[string]string{
		"/api/seats/screen/12": "/api/seats/screen/:id",
		"/api/shows/4":         "/api/shows/:id",
		"/api/seats/block":     "/api/seats/block",
		"/api/bookings/7/cancel": "/api/bookings/:id/cancel",
	}
	for in, want := range cases {
		assert.Equal(t, want, metricRoute(in), in)
	}
}
