package create_hold

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// AvailabilityService интерфейс калькулятора доступности
type AvailabilityService interface {
	GetActiveProduct(ctx context.Context, productID int64) (*domain.Product, error)
	ResolveSlot(ctx context.Context, productID int64, date time.Time, startTime types.TimeString) (*domain.ScheduleTemplate, error)
	CommittedSeats(ctx context.Context, productID int64, date time.Time, startTime types.TimeString, forUpdate bool) (int, error)
	HeldSeats(ctx context.Context, productID int64, slotStart time.Time, excludeSessionID *string) (int, error)
	SlotInstant(date time.Time, startTime types.TimeString) (time.Time, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error)
	DeleteBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error
}

// HoldsService интерфейс настроек подсистемы холдов
type HoldsService interface {
	Enabled() bool
	TTL() time.Duration
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
