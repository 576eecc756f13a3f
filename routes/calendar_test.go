package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/ayoub302/farm-sub001/calendar"
	"github.com/ayoub302/farm-sub001/models"
)

// fakeCache records calendar cache traffic for assertions.
type fakeCache struct {
	entries     map[string][]byte
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, ok := f.entries[key]
	return payload, ok
}

func (f *fakeCache) Set(ctx context.Context, key string, payload []byte) {
	f.entries[key] = payload
}

func (f *fakeCache) InvalidateCalendar(ctx context.Context) {
	f.invalidated++
	f.entries = map[string][]byte{}
}

type stubCalendarStore struct {
	activities []models.Activity
}

func (s *stubCalendarStore) ActivitiesBetween(ctx context.Context, from, to time.Time) ([]models.Activity, error) {
	return s.activities, nil
}

func (s *stubCalendarStore) EventsBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	return nil, nil
}

func (s *stubCalendarStore) HarvestsBetween(ctx context.Context, from, to time.Time) ([]models.Harvest, error) {
	return nil, nil
}

func buildCalendarApp(t *testing.T, store calendar.Store) *iris.Application {
	t.Helper()

	handler := &CalendarHandler{
		Aggregator: calendar.New(store, time.UTC, zap.NewNop()),
		Cache:      newFakeCache(),
		Log:        zap.NewNop(),
		Loc:        time.UTC,
		Env:        "test",
	}

	app := iris.New()
	app.Get("/api/calendar", handler.Get)
	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

func TestCalendarEndpoint(t *testing.T) {
	store := &stubCalendarStore{
		activities: []models.Activity{
			{
				ID:          1,
				TitleFr:     "Cueillette des oranges",
				TitleAr:     "قطف البرتقال",
				Date:        time.Date(2025, time.February, 10, 10, 0, 0, 0, time.UTC),
				Category:    models.CategoryHarvest,
				MaxCapacity: 20,
				Status:      models.ActivityUpcoming,
				Bookings:    []models.Booking{{Status: models.BookingConfirmed, NumPeople: 5}},
			},
		},
	}
	app := buildCalendarApp(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar?month=2&year=2025", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.Code, resp.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Days map[string][]struct {
				Remaining int    `json:"cuposDisponibles"`
				Full      bool   `json:"lleno"`
				Type      string `json:"type"`
			} `json:"activitiesByDate"`
			Summary struct {
				TotalActivities int `json:"totalActivities"`
			} `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	items := body.Data.Days["2025-02-10"]
	if len(items) != 1 {
		t.Fatalf("expected one item under 2025-02-10, got %d", len(items))
	}
	if items[0].Remaining != 15 || items[0].Full {
		t.Errorf("capacity = %d/full=%v, want 15/false", items[0].Remaining, items[0].Full)
	}
	if items[0].Type != "cosecha" {
		t.Errorf("type = %q, want cosecha", items[0].Type)
	}
	if body.Data.Summary.TotalActivities != 1 {
		t.Errorf("totalActivities = %d, want 1", body.Data.Summary.TotalActivities)
	}
}

func TestCalendarEndpointRejectsBadMonth(t *testing.T) {
	app := buildCalendarApp(t, &stubCalendarStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/calendar?month=13&year=2025", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.Code)
	}
}
