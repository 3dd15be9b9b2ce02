package holds

import (
	"context"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error)
	GetBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string, now time.Time, forUpdate bool) (*domain.Hold, error)
	DeleteBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Clock интерфейс часов площадки
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// MetricsObserver фиксирует число удаленных свипом холдов (опционально)
type MetricsObserver interface {
	AddHoldsSwept(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
