package get_available_dates

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// AvailabilityService интерфейс калькулятора доступности
type AvailabilityService interface {
	ComputeRange(ctx context.Context, productID int64, from, to time.Time) ([]*domain.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
