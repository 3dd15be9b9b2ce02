package get_day_availability

import (
	"context"
	"time"

	getDayAvailability "github.com/fp-experiences/booking-service/internal/usecase/get_day_availability"
)

type GetDayAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getDayAvailability.Request) (*getDayAvailability.Response, error)
}

// Cache интерфейс кеша ответов доступности (опционально)
type Cache interface {
	GetDay(ctx context.Context, productID int64, date time.Time) ([]byte, bool)
	SetDay(ctx context.Context, productID int64, date time.Time, payload []byte)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
