package cancel_order_bookings

import (
	"context"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByOrder(ctx context.Context, orderID int64, activeOnly bool) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс шины доменных событий
type EventPublisher interface {
	PublishBookingCancelled(ctx context.Context, e events.BookingCancelled)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
