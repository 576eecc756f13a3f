package routes

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
)

// openTestDB returns an isolated in-memory database carrying the full
// schema. The pool is pinned to one connection so every statement sees the
// same in-memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Harvest{},
		&models.Activity{},
		&models.Booking{},
		&models.CalendarEvent{},
		&models.Product{},
		&models.GalleryItem{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}
	return db
}
