package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
	"github.com/ayoub302/farm-sub001/storage"
)

func buildEventApp(t *testing.T, h *EventHandler) *iris.Application {
	t.Helper()

	app := iris.New()
	app.Validator = validator.New()
	app.Get("/api/admin/events", h.AdminList)
	app.Post("/api/admin/events", h.AdminCreate)
	app.Delete("/api/admin/events/{id:uint}", h.AdminDelete)
	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

func TestEventCreateReachesCalendar(t *testing.T) {
	db := openTestDB(t)
	cache := newFakeCache()
	h := &EventHandler{DB: db, Cache: cache, Log: zap.NewNop(), Env: "test"}
	app := buildEventApp(t, h)

	body := `{
		"titleFr": "Journée portes ouvertes",
		"titleAr": "يوم مفتوح",
		"startDate": "2025-05-17T09:00:00Z",
		"isPublic": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", resp.Code, resp.Body.String())
	}
	if cache.invalidated != 1 {
		t.Errorf("calendar cache invalidated %d times, want 1", cache.invalidated)
	}

	// The created event must surface through the calendar month fetch.
	store := storage.NewCalendarStore(db)
	from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)
	events, err := store.EventsBetween(context.Background(), from, to)
	if err != nil {
		t.Fatalf("EventsBetween: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event in the May window, got %d", len(events))
	}
	if events[0].TitleFr != "Journée portes ouvertes" || !events[0].IsPublic {
		t.Errorf("fetched event = %+v, want the created public event", events[0])
	}
}

func TestEventDelete(t *testing.T) {
	db := openTestDB(t)
	event := models.CalendarEvent{
		TitleFr:   "Marché fermier",
		TitleAr:   "سوق المزرعة",
		StartDate: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC),
		IsPublic:  true,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	cache := newFakeCache()
	h := &EventHandler{DB: db, Cache: cache, Log: zap.NewNop(), Env: "test"}
	app := buildEventApp(t, h)

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/admin/events/%d", event.ID), nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.Code, resp.Body.String())
	}
	if err := db.First(&models.CalendarEvent{}, event.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("event still present after delete (err: %v)", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("calendar cache invalidated %d times, want 1", cache.invalidated)
	}
}
