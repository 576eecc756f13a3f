package calendar

import (
	"github.com/ayoub302/farm-sub001/models"
)

// CapacityReport accounts one activity's occupied and remaining seats. The
// JSON field names match what the public site renders. Remaining is not
// clamped; an overbooked activity reports a negative value.
type CapacityReport struct {
	Occupied  int  `json:"ocupados"`
	Remaining int  `json:"cuposDisponibles"`
	Full      bool `json:"lleno"`
}

// Capacity sums the party sizes of confirmed bookings against maxCapacity.
// Pending and cancelled bookings never count.
func Capacity(maxCapacity int, bookings []models.Booking) CapacityReport {
	occupied := 0
	for _, b := range bookings {
		if b.Status == models.BookingConfirmed {
			occupied += b.NumPeople
		}
	}
	return CapacityReport{
		Occupied:  occupied,
		Remaining: maxCapacity - occupied,
		Full:      occupied >= maxCapacity,
	}
}
