package routes

import (
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
)

func buildBookingApp(t *testing.T, h *BookingHandler) *iris.Application {
	t.Helper()

	app := iris.New()
	app.Validator = validator.New()
	app.Post("/api/bookings", h.Create)
	app.Patch("/api/admin/bookings/{id:uint}", h.AdminUpdateStatus)
	app.Delete("/api/admin/bookings/{id:uint}", h.AdminDelete)
	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

func seedBooking(t *testing.T, db *gorm.DB, code string, activityID *uint) models.Booking {
	t.Helper()

	booking := models.Booking{
		Code:        code,
		ActivityID:  activityID,
		ClientName:  "Amina Idrissi",
		ClientEmail: "amina@example.com",
		NumPeople:   4,
		Status:      models.BookingPending,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seeding booking: %v", err)
	}
	return booking
}

func TestBookingConfirmationInvalidatesCalendar(t *testing.T) {
	db := openTestDB(t)

	activity := models.Activity{
		TitleFr:     "Visite du verger",
		TitleAr:     "جولة في البستان",
		Date:        time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC),
		Category:    models.CategoryVisit,
		MaxCapacity: 20,
		Status:      models.ActivityUpcoming,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("seeding activity: %v", err)
	}
	booking := seedBooking(t, db, "RSV-AAAA01", &activity.ID)

	cache := newFakeCache()
	h := &BookingHandler{DB: db, Cache: cache, Log: zap.NewNop(), Env: "test"}
	app := buildBookingApp(t, h)

	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/api/admin/bookings/%d", booking.ID),
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.Code, resp.Body.String())
	}

	var updated models.Booking
	if err := db.First(&updated, booking.ID).Error; err != nil {
		t.Fatalf("reloading booking: %v", err)
	}
	if updated.Status != models.BookingConfirmed {
		t.Errorf("status = %q, want confirmed", updated.Status)
	}
	if cache.invalidated != 1 {
		t.Errorf("calendar cache invalidated %d times, want 1", cache.invalidated)
	}
}

func TestBookingDeleteInvalidatesCalendar(t *testing.T) {
	db := openTestDB(t)

	activity := models.Activity{
		TitleFr:     "Atelier confiture",
		TitleAr:     "ورشة المربى",
		Date:        time.Date(2025, time.April, 12, 14, 0, 0, 0, time.UTC),
		Category:    models.CategoryWorkshop,
		MaxCapacity: 8,
		Status:      models.ActivityActive,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("seeding activity: %v", err)
	}
	booking := seedBooking(t, db, "RSV-AAAA02", &activity.ID)

	cache := newFakeCache()
	h := &BookingHandler{DB: db, Cache: cache, Log: zap.NewNop(), Env: "test"}
	app := buildBookingApp(t, h)

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/admin/bookings/%d", booking.ID), nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.Code, resp.Body.String())
	}
	if err := db.First(&models.Booking{}, booking.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("booking still present after delete (err: %v)", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("calendar cache invalidated %d times, want 1", cache.invalidated)
	}
}

func TestActivitylessBookingLeavesCalendarCache(t *testing.T) {
	db := openTestDB(t)
	booking := seedBooking(t, db, "RSV-AAAA03", nil)

	cache := newFakeCache()
	h := &BookingHandler{DB: db, Cache: cache, Log: zap.NewNop(), Env: "test"}
	app := buildBookingApp(t, h)

	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/api/admin/bookings/%d", booking.ID),
		strings.NewReader(`{"status":"cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.Code, resp.Body.String())
	}
	if cache.invalidated != 0 {
		t.Errorf("activity-less booking invalidated the calendar cache %d times, want 0", cache.invalidated)
	}
}
