package policy

import (
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// CutoffResult результат проверки cutoff для слота
type CutoffResult struct {
	Valid   bool
	Message string
}

// ValidateCutoff проверяет, что до начала слота остается не меньше
// cutoffMinutes минут. Дата и время слота совмещаются в таймзоне площадки,
// текущий момент берется из того же Clock - серверная таймзона не участвует.
//
// cutoffMinutes = 0 означает "без cutoff": слот валиден, пока не начался.
func ValidateCutoff(slotDate time.Time, slotTime types.TimeString, cutoffMinutes int, clock siteclock.Clock) (CutoffResult, error) {
	if cutoffMinutes < 0 {
		return CutoffResult{}, fmt.Errorf("%w: cutoff_minutes must not be negative, got %d", domain.ErrInvalidPolicy, cutoffMinutes)
	}

	slotInstant, err := slotTime.OnDate(slotDate, clock.Location())
	if err != nil {
		return CutoffResult{}, err
	}

	now := clock.Now()

	if !slotInstant.After(now) {
		return CutoffResult{
			Valid:   false,
			Message: "this time slot has already started",
		}, nil
	}

	if cutoffMinutes == 0 {
		return CutoffResult{Valid: true}, nil
	}

	earliestAllowed := now.Add(time.Duration(cutoffMinutes) * time.Minute)
	if slotInstant.Before(earliestAllowed) {
		return CutoffResult{
			Valid: false,
			Message: fmt.Sprintf(
				"this time slot is too close to departure, bookings close %d minutes before start",
				cutoffMinutes,
			),
		}, nil
	}

	return CutoffResult{Valid: true}, nil
}
