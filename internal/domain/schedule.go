package domain

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// ScheduleTemplate is an immutable weekly schedule rule for a product:
// the same slot recurs every week on DayOfWeek at StartTime.
// Templates are owned by the external admin module; this service reads them.
type ScheduleTemplate struct {
	ID             int64
	ProductID      int64
	DayOfWeek      int // 0=Sunday .. 6=Saturday
	StartTime      types.TimeString
	DurationMin    int
	Capacity       int
	Lang           string
	MeetingPointID *int64
	PriceAdult     float64
	PriceChild     float64
	IsActive       bool
	CreatedAt      time.Time
}

// MatchesWeekday returns true if the template recurs on the given weekday
func (t *ScheduleTemplate) MatchesWeekday(weekday time.Weekday) bool {
	return t.DayOfWeek == int(weekday)
}

// EndTime returns the slot end time derived from start and duration
func (t *ScheduleTemplate) EndTime() (types.TimeString, error) {
	return t.StartTime.AddMinutes(t.DurationMin)
}
