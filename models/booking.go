package models

import (
	"time"
)

// Booking statuses. Only confirmed bookings count toward an activity's
// occupied capacity.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Booking is a client reservation against an activity's capacity. The
// activity reference is nullable; walk-in and test records exist without one.
type Booking struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:16;uniqueIndex;not null"`

	ActivityID *uint `json:"activityID" gorm:"index"`
	HarvestID  *uint `json:"harvestID" gorm:"index"`

	ClientName  string `json:"clientName" gorm:"not null"`
	ClientEmail string `json:"clientEmail" gorm:"not null"`
	ClientPhone string `json:"clientPhone"`

	NumPeople int    `json:"numPeople" gorm:"not null"`
	Status    string `json:"status" gorm:"size:16;default:'pending';index"`

	PaymentStatus string `json:"paymentStatus" gorm:"size:16;default:'unpaid'"`
	PaymentMethod string `json:"paymentMethod" gorm:"size:32"`

	VisitDate *time.Time `json:"visitDate"`
	VisitTime string     `json:"visitTime" gorm:"size:8"`

	Notes           string `json:"notes" gorm:"type:text"`
	SpecialRequests string `json:"specialRequests" gorm:"type:text"`

	// Channel tags where the booking originated, e.g. "web" or "phone".
	Channel string `json:"channel" gorm:"size:16;default:'web'"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Activity *Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
}
