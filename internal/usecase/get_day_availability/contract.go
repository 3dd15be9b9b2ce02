package get_day_availability

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// AvailabilityService интерфейс калькулятора доступности
type AvailabilityService interface {
	GetActiveProduct(ctx context.Context, productID int64) (*domain.Product, error)
	ComputeDay(ctx context.Context, productID int64, date time.Time) (*domain.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
