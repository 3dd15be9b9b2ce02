package availability

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// ProductRepository интерфейс репозитория продуктов
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ScheduleRepository интерфейс репозитория шаблонов расписаний
type ScheduleRepository interface {
	GetForDay(ctx context.Context, productID int64, dayOfWeek int) ([]*domain.ScheduleTemplate, error)
	GetByProduct(ctx context.Context, productID int64) ([]*domain.ScheduleTemplate, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForSlot(ctx context.Context, filter domain.SlotBookingsFilter) ([]*domain.Booking, error)
	GetActiveForDay(ctx context.Context, productID int64, date time.Time) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	SumActiveSeats(ctx context.Context, productID int64, slotStart time.Time, now time.Time, excludeSessionID *string) (int, error)
	GetActiveForRange(ctx context.Context, productID int64, from, to time.Time, now time.Time) ([]*domain.Hold, error)
}

// Clock интерфейс часов площадки
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
