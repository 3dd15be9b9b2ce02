package create_order_bookings

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	"github.com/fp-experiences/booking-service/internal/service/bookings"
)

// BookingCommitter интерфейс единого коммита бронирования
type BookingCommitter interface {
	Commit(ctx context.Context, p bookings.CommitParams) (*domain.Booking, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByOrderItem(ctx context.Context, orderID, orderItemID int64) (*domain.Booking, error)
}

// HoldRepository интерфейс репозитория холдов
// Холд сессии оформления потребляется вместе с созданием бронирования
type HoldRepository interface {
	DeleteBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс шины доменных событий
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, e events.BookingConfirmed)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
