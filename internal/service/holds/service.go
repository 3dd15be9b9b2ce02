package holds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	holdRepo "github.com/fp-experiences/booking-service/internal/infra/storage/hold"
)

// Service сервис жизненного цикла холдов мест
// Холд временно резервирует места слота на время оформления заказа.
// Просроченные холды удаляет периодический свип
type Service struct {
	holdRepo   HoldRepository
	clock      Clock
	enabled    bool
	ttlMinutes int
	metrics    MetricsObserver
	logger     Logger
}

// NewService создает новый экземпляр сервиса холдов
func NewService(holdRepo HoldRepository, clock Clock, enabled bool, ttlMinutes int, logger Logger) *Service {
	if ttlMinutes <= 0 {
		ttlMinutes = domain.DefaultHoldTTLMinutes
	}
	return &Service{
		holdRepo:   holdRepo,
		clock:      clock,
		enabled:    enabled,
		ttlMinutes: ttlMinutes,
		logger:     logger,
	}
}

// WithMetrics подключает сборщик метрик свипа
func (s *Service) WithMetrics(m MetricsObserver) *Service {
	s.metrics = m
	return s
}

// Enabled возвращает true, если подсистема холдов включена
func (s *Service) Enabled() bool {
	return s.enabled
}

// TTL возвращает время жизни холда
func (s *Service) TTL() time.Duration {
	return time.Duration(s.ttlMinutes) * time.Minute
}

// Release снимает холд сессии со слота
// Снятие отсутствующего холда не является ошибкой: клиент мог отпустить
// слот уже после того, как свип удалил просроченный холд
func (s *Service) Release(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error {
	if !s.enabled {
		return ErrHoldsDisabled
	}

	if err := s.holdRepo.DeleteBySessionSlot(ctx, productID, slotStart, sessionID); err != nil {
		s.logger.Error("Release: repository error for product=%d session=%s: %v", productID, sessionID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: released hold product=%d slot=%s session=%s",
		productID, slotStart.Format(time.RFC3339), sessionID)
	return nil
}

// Get возвращает активный холд сессии для слота
func (s *Service) Get(ctx context.Context, productID int64, slotStart time.Time, sessionID string) (*domain.Hold, error) {
	if !s.enabled {
		return nil, ErrHoldsDisabled
	}

	h, err := s.holdRepo.GetBySessionSlot(ctx, productID, slotStart, sessionID, s.clock.Now(), false)
	if err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return h, nil
}

// Sweep удаляет все просроченные холды и возвращает их количество
// Вызывается периодическим свипером; безопасен при конкурентных запусках
func (s *Service) Sweep(ctx context.Context) (int, error) {
	if !s.enabled {
		return 0, nil
	}

	swept, err := s.holdRepo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("Sweep: repository error: %v", err)
		return 0, fmt.Errorf("%w: Sweep - repository error: %v", ErrInternal, err)
	}

	if swept > 0 {
		s.logger.Info("Sweep: removed %d expired holds", swept)
		if s.metrics != nil {
			s.metrics.AddHoldsSwept(swept)
		}
	}

	return swept, nil
}
