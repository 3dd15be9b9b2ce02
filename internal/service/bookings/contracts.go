package bookings

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	CheckIn(ctx context.Context, id int64, staffID int64, at time.Time) error
}

// AvailabilityService интерфейс калькулятора доступности
type AvailabilityService interface {
	GetActiveProduct(ctx context.Context, productID int64) (*domain.Product, error)
	ResolveSlot(ctx context.Context, productID int64, date time.Time, startTime types.TimeString) (*domain.ScheduleTemplate, error)
	CommittedSeats(ctx context.Context, productID int64, date time.Time, startTime types.TimeString, forUpdate bool) (int, error)
	HeldSeats(ctx context.Context, productID int64, slotStart time.Time, excludeSessionID *string) (int, error)
	SlotInstant(date time.Time, startTime types.TimeString) (time.Time, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс шины доменных событий
type EventPublisher interface {
	PublishBookingCancelled(ctx context.Context, e events.BookingCancelled)
}

// SchemaHealer повторно применяет миграции при пропавшей рабочей таблице
type SchemaHealer interface {
	EnsureSchema(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
