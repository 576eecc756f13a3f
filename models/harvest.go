package models

import (
	"time"
)

// Harvest is a recurring seasonal product-availability record. It owns
// activities, bookings, calendar events and products; deleting a harvest
// removes the whole group.
type Harvest struct {
	ID uint `json:"id" gorm:"primaryKey"`

	ProductFr      string `json:"productFr" gorm:"not null"`
	ProductAr      string `json:"productAr" gorm:"not null"`
	DescriptionFr  string `json:"descriptionFr" gorm:"type:text"`
	DescriptionAr  string `json:"descriptionAr" gorm:"type:text"`
	StatusFr       string `json:"statusFr"`
	StatusAr       string `json:"statusAr"`
	AvailabilityFr string `json:"availabilityFr"`
	AvailabilityAr string `json:"availabilityAr"`

	Icon   string `json:"icon" gorm:"size:16"`
	Season string `json:"season" gorm:"size:32"`
	Year   int    `json:"year"`

	NextHarvest *time.Time `json:"nextHarvest" gorm:"index"`
	IsActive    bool       `json:"isActive" gorm:"index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Activities []Activity      `json:"activities,omitempty" gorm:"foreignKey:HarvestID"`
	Events     []CalendarEvent `json:"events,omitempty" gorm:"foreignKey:HarvestID"`
	Products   []Product       `json:"products,omitempty" gorm:"foreignKey:HarvestID"`
}

// Product returns the bilingual product name.
func (h *Harvest) Product() Bilingual {
	return Bilingual{Ar: h.ProductAr, Fr: h.ProductFr}
}

// Description returns the bilingual description.
func (h *Harvest) Description() Bilingual {
	return Bilingual{Ar: h.DescriptionAr, Fr: h.DescriptionFr}
}

// Product is a sellable farm product attached to a harvest.
type Product struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	HarvestID uint `json:"harvestID" gorm:"not null;index"`

	NameFr string `json:"nameFr" gorm:"not null"`
	NameAr string `json:"nameAr" gorm:"not null"`

	Price     float64 `json:"price"`
	Unit      string  `json:"unit" gorm:"size:16"`
	ImageURL  string  `json:"imageURL"`
	Available bool    `json:"available"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Name returns the bilingual product name.
func (p *Product) Name() Bilingual {
	return Bilingual{Ar: p.NameAr, Fr: p.NameFr}
}
