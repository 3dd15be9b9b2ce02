package domain

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// Slot is a single bookable date+time instance derived on demand from a
// ScheduleTemplate plus the bookings and active holds for that instance.
// Slots are never persisted.
type Slot struct {
	ProductID      int64
	ScheduleID     int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Capacity       int
	Booked         int
	HeldCount      int
	Available      int
	AdultPrice     float64
	ChildPrice     float64
	MeetingPointID *int64
	Lang           string
}

// IsAvailable returns true if at least one seat is free
func (s *Slot) IsAvailable() bool {
	return s.Available > 0
}

// CanFit returns true if the requested number of seats fits into the slot
func (s *Slot) CanFit(seats int) bool {
	return seats > 0 && s.Available >= seats
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	occupied := s.Capacity - s.Available
	return float64(occupied) / float64(s.Capacity) * 100
}

// DayAvailability aggregates all slots of one calendar date
type DayAvailability struct {
	Date              time.Time
	TotalCapacity     int
	AvailableCapacity int
	Slots             []Slot
}

// HasAvailability returns true if any slot of the day has free seats
func (d *DayAvailability) HasAvailability() bool {
	return d.AvailableCapacity > 0
}
