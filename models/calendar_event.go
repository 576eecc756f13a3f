package models

import (
	"time"
)

// CalendarEvent is a publishable calendar annotation, optionally tied to a
// harvest. Only events with IsPublic set appear on the public calendar.
type CalendarEvent struct {
	ID uint `json:"id" gorm:"primaryKey"`

	TitleFr       string `json:"titleFr" gorm:"not null"`
	TitleAr       string `json:"titleAr" gorm:"not null"`
	DescriptionFr string `json:"descriptionFr" gorm:"type:text"`
	DescriptionAr string `json:"descriptionAr" gorm:"type:text"`

	StartDate time.Time  `json:"startDate" gorm:"not null;index"`
	EndDate   *time.Time `json:"endDate"`

	Type     string `json:"type" gorm:"size:32"`
	Color    string `json:"color" gorm:"size:16"`
	IsPublic bool   `json:"isPublic" gorm:"index"`

	HarvestID *uint `json:"harvestID" gorm:"index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Title returns the bilingual title.
func (e *CalendarEvent) Title() Bilingual {
	return Bilingual{Ar: e.TitleAr, Fr: e.TitleFr}
}

// Description returns the bilingual description.
func (e *CalendarEvent) Description() Bilingual {
	return Bilingual{Ar: e.DescriptionAr, Fr: e.DescriptionFr}
}
