package routes

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
)

func TestHarvestCascadeDeleteLeavesNoOrphans(t *testing.T) {
	db := openTestDB(t)

	next := time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)
	harvest := models.Harvest{ProductFr: "Olives", ProductAr: "زيتون", NextHarvest: &next, IsActive: true}
	if err := db.Create(&harvest).Error; err != nil {
		t.Fatalf("seeding harvest: %v", err)
	}

	activity := models.Activity{
		TitleFr:     "Récolte des olives",
		TitleAr:     "قطف الزيتون",
		Date:        next,
		Category:    models.CategoryHarvest,
		MaxCapacity: 15,
		Status:      models.ActivityUpcoming,
		HarvestID:   &harvest.ID,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("seeding activity: %v", err)
	}

	// One booking through the activity, one referencing the harvest
	// directly; both belong to the cascade group.
	bookings := []models.Booking{
		{Code: "RSV-CASC01", ActivityID: &activity.ID, ClientName: "Karim", ClientEmail: "karim@example.com", NumPeople: 2, Status: models.BookingConfirmed},
		{Code: "RSV-CASC02", HarvestID: &harvest.ID, ClientName: "Sara", ClientEmail: "sara@example.com", NumPeople: 3, Status: models.BookingPending},
	}
	if err := db.Create(&bookings).Error; err != nil {
		t.Fatalf("seeding bookings: %v", err)
	}

	event := models.CalendarEvent{TitleFr: "Semaine des olives", TitleAr: "أسبوع الزيتون", StartDate: next, IsPublic: true, HarvestID: &harvest.ID}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("seeding event: %v", err)
	}
	product := models.Product{HarvestID: harvest.ID, NameFr: "Huile d'olive", NameAr: "زيت الزيتون", Price: 80, Unit: "L", Available: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seeding product: %v", err)
	}

	// An unrelated booking must survive the cascade.
	bystander := models.Booking{Code: "RSV-SAFE01", ClientName: "Nadia", ClientEmail: "nadia@example.com", NumPeople: 1, Status: models.BookingPending}
	if err := db.Create(&bystander).Error; err != nil {
		t.Fatalf("seeding unrelated booking: %v", err)
	}

	h := &HarvestHandler{DB: db, Log: zap.NewNop(), Env: "test"}
	if err := h.deleteCascade(harvest.ID); err != nil {
		t.Fatalf("deleteCascade: %v", err)
	}

	var n int64
	db.Model(&models.Booking{}).Where("harvest_id = ? OR activity_id = ?", harvest.ID, activity.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d bookings still reference the harvest group", n)
	}
	db.Model(&models.Activity{}).Where("harvest_id = ?", harvest.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d activities still reference the harvest", n)
	}
	db.Model(&models.CalendarEvent{}).Where("harvest_id = ?", harvest.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d events still reference the harvest", n)
	}
	db.Model(&models.Product{}).Where("harvest_id = ?", harvest.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d products still reference the harvest", n)
	}

	if err := db.First(&models.Harvest{}, harvest.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("harvest still present after cascade (err: %v)", err)
	}
	if err := db.First(&models.Booking{}, bystander.ID).Error; err != nil {
		t.Errorf("unrelated booking was deleted by the cascade: %v", err)
	}
}
