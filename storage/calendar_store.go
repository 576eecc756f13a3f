package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
)

// CalendarStore runs the month-window fetches behind the calendar
// aggregation. The three queries are independent and safe to issue
// concurrently.
type CalendarStore struct {
	db *gorm.DB
}

// NewCalendarStore wraps db for calendar reads.
func NewCalendarStore(db *gorm.DB) *CalendarStore {
	return &CalendarStore{db: db}
}

// ActivitiesBetween returns upcoming and active activities starting inside
// [from, to], each with its confirmed bookings, ascending by date.
func (s *CalendarStore) ActivitiesBetween(ctx context.Context, from, to time.Time) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Where("status IN ?", []string{models.ActivityUpcoming, models.ActivityActive}).
		Preload("Bookings", "status = ?", models.BookingConfirmed).
		Order("date ASC").
		Find(&activities).Error
	return activities, err
}

// EventsBetween returns public calendar events starting inside [from, to],
// ascending by start date.
func (s *CalendarStore) EventsBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.db.WithContext(ctx).
		Where("start_date >= ? AND start_date <= ?", from, to).
		Where("is_public = ?", true).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

// HarvestsBetween returns active harvests whose next scheduled harvest falls
// inside [from, to], ascending by that date.
func (s *CalendarStore) HarvestsBetween(ctx context.Context, from, to time.Time) ([]models.Harvest, error) {
	var harvests []models.Harvest
	err := s.db.WithContext(ctx).
		Where("next_harvest >= ? AND next_harvest <= ?", from, to).
		Where("is_active = ?", true).
		Order("next_harvest ASC").
		Find(&harvests).Error
	return harvests, err
}
