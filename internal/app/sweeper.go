package app

import (
	"context"
	"time"
)

// HoldSweeperService интерфейс сервиса холдов для свипера
type HoldSweeperService interface {
	Enabled() bool
	Sweep(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически удаляет просроченные холды
// Удаление ключуется по expires_at и безопасно относительно конкурентной
// конвертации: конвертация держит блокировку строки холда в своей транзакции
type Sweeper struct {
	holds    HoldSweeperService
	interval time.Duration
	logger   Logger
	stopChan chan struct{}
}

// NewSweeper создает новый свипер холдов
func NewSweeper(holds HoldSweeperService, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		holds:    holds,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую задачу свипа
func (s *Sweeper) Start(ctx context.Context) {
	if !s.holds.Enabled() {
		s.logger.Info("Hold sweeper not started: holds system disabled")
		return
	}

	s.logger.Info("Starting hold sweeper, interval=%s", s.interval)
	go s.run(ctx)
}

// Stop останавливает фоновую задачу
func (s *Sweeper) Stop() {
	s.logger.Info("Stopping hold sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// Первый проход сразу при старте
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Hold sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Hold sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.holds.Sweep(ctx)
	if err != nil {
		s.logger.Error("Hold sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Info("Hold sweep removed %d expired holds", removed)
	}
}
