package policy

import (
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// EvaluateCancellation вычисляет решение по отмене бронирования.
// Дедлайн бесплатной отмены = начало слота минус окно бесплатной отмены,
// целиком в таймзоне площадки.
//
// CanCancel здесь всегда true: абсолютного запрета отмены политика не
// моделирует. Отказ по состоянию бронирования (уже выполнено, чекин прошел)
// - зона ответственности вызывающего, не этого движка.
func EvaluateCancellation(bookingStart time.Time, cfg domain.PolicyConfig, clock siteclock.Clock) (domain.CancellationDecision, error) {
	if err := cfg.Validate(); err != nil {
		return domain.CancellationDecision{}, err
	}

	startLocal := bookingStart.In(clock.Location())
	deadline := startLocal.Add(-time.Duration(cfg.FreeCancelUntilMinutes) * time.Minute)

	return domain.CancellationDecision{
		CanCancel:  true,
		Deadline:   deadline,
		IsFree:     clock.Now().Before(deadline),
		FeePercent: cfg.CancellationFeePercent,
	}, nil
}

// EvaluateCancellationForSlot удобная форма для бронирований, где начало
// задано парой (дата, время) в таймзоне площадки
func EvaluateCancellationForSlot(date time.Time, startTime types.TimeString, cfg domain.PolicyConfig, clock siteclock.Clock) (domain.CancellationDecision, error) {
	instant, err := startTime.OnDate(date, clock.Location())
	if err != nil {
		return domain.CancellationDecision{}, err
	}
	return EvaluateCancellation(instant, cfg, clock)
}
