package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testStack struct {
	db  *database.DB
	bus *events.EventBus
	svc Services
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus(&logger)
	bookings := service.NewBookingService(db, bus, &logger)
	comments := service.NewCommentService(db, bookings, bus, &logger)

	return &testStack{
		db:  db,
		bus: bus,
		svc: Services{
			Users:    service.NewUserService(db, &logger),
			Items:    service.NewItemService(db, bookings, comments, &logger),
			Bookings: bookings,
			Comments: comments,
			Requests: service.NewRequestService(db, &logger),
		},
	}
}

func openAPIConfig() config.APIConfig {
	return config.APIConfig{Enabled: true, HTTP: config.APIHTTPConfig{Enabled: true}}
}

func (s *testStack) httpServer(t *testing.T, cfg config.APIConfig) *httptest.Server {
	t.Helper()
	logger := zerolog.New(io.Discard)
	srv := NewHTTPServer(cfg, s.svc, s.db, &logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// call sends a JSON request. userID 0 omits the X-Sharer-User-Id header.
func call(t *testing.T, ts *httptest.Server, method, path string, userID int64, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(userIDHeader, strconv.FormatInt(userID, 10))
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func errorMessage(t *testing.T, data []byte) string {
	t.Helper()
	return decode[map[string]string](t, data)["error"]
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func createUser(t *testing.T, ts *httptest.Server, name string) int64 {
	t.Helper()
	resp, data := call(t, ts, http.MethodPost, "/users", 0, models.UserInput{Name: strPtr(name), Email: strPtr(name + "@example.com")})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	return decode[models.UserView](t, data).ID
}

func createItem(t *testing.T, ts *httptest.Server, ownerID int64, name string, available bool) int64 {
	t.Helper()
	resp, data := call(t, ts, http.MethodPost, "/items", ownerID, models.ItemInput{
		Name: strPtr(name), Description: strPtr(name + " for rent"), Available: boolPtr(available),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	return decode[models.ItemView](t, data).ID
}

func futureBooking(itemID int64, startIn, endIn time.Duration) models.BookingInput {
	now := time.Now().Truncate(time.Second)
	return models.BookingInput{
		ItemID: itemID,
		Start:  models.NewLocalTime(now.Add(startIn)),
		End:    models.NewLocalTime(now.Add(endIn)),
	}
}
