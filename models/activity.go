package models

import (
	"time"
)

// Activity statuses.
const (
	ActivityUpcoming  = "upcoming"
	ActivityActive    = "active"
	ActivityCompleted = "completed"
	ActivityCancelled = "cancelled"
)

// Activity is a scheduled, bookable farm event with finite capacity.
type Activity struct {
	ID uint `json:"id" gorm:"primaryKey"`

	TitleFr       string `json:"titleFr" gorm:"not null"`
	TitleAr       string `json:"titleAr" gorm:"not null"`
	DescriptionFr string `json:"descriptionFr" gorm:"type:text"`
	DescriptionAr string `json:"descriptionAr" gorm:"type:text"`

	// Date is the scheduled start instant; EndDate is optional.
	Date    time.Time  `json:"date" gorm:"not null;index"`
	EndDate *time.Time `json:"endDate"`

	// StartTime/EndTime override the clock extracted from the instants
	// when set, e.g. "09:30".
	StartTime string `json:"startTime" gorm:"size:8"`
	EndTime   string `json:"endTime" gorm:"size:8"`

	Category    ActivityCategory `json:"category" gorm:"size:32;index"`
	Location    string           `json:"location"`
	MaxCapacity int              `json:"maxCapacity"`
	Status      string           `json:"status" gorm:"size:16;default:'upcoming';index"`
	ImageURL    string           `json:"imageURL"`
	Featured    bool             `json:"featured" gorm:"index"`

	HarvestID *uint `json:"harvestID" gorm:"index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Bookings []Booking `json:"bookings" gorm:"foreignKey:ActivityID"`
}

// Title returns the bilingual title.
func (a *Activity) Title() Bilingual {
	return Bilingual{Ar: a.TitleAr, Fr: a.TitleFr}
}

// Description returns the bilingual description.
func (a *Activity) Description() Bilingual {
	return Bilingual{Ar: a.DescriptionAr, Fr: a.DescriptionFr}
}

// Bookable reports whether the activity still accepts reservations.
func (a *Activity) Bookable() bool {
	return a.Status == ActivityUpcoming || a.Status == ActivityActive
}
