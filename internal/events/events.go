package events

import (
	"context"
	"sync"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// Event names
const (
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
)

// BookingConfirmed публикуется ровно один раз на каждое фактически
// созданное бронирование. Повторные доставки вебхука заказа события
// не порождают: дубликаты разрешаются до коммита
type BookingConfirmed struct {
	BookingID int64
	Booking   *domain.Booking
}

// BookingCancelled публикуется на каждое отмененное бронирование
// отдельно: инвалидация кеша и уведомления ключуются парой (product, date),
// а заказ может охватывать несколько продуктов и дат
type BookingCancelled struct {
	BookingID int64
	ProductID int64
	Date      time.Time
}

// Subscriber обработчик доменных событий
// Ошибки обработчиков логируются шиной и не откатывают породившую операцию
type Subscriber interface {
	OnBookingConfirmed(ctx context.Context, e BookingConfirmed)
	OnBookingCancelled(ctx context.Context, e BookingCancelled)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsObserver фиксирует публикации событий (опционально)
type MetricsObserver interface {
	ObserveEventEmitted(event string)
}

// Bus синхронная внутрипроцессная шина доменных событий
// Подписчики регистрируются на старте, до первой публикации
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	logger      Logger
	metrics     MetricsObserver
}

// NewBus создает новую шину событий
func NewBus(logger Logger) *Bus {
	return &Bus{logger: logger}
}

// WithMetrics подключает сборщик метрик публикаций
func (b *Bus) WithMetrics(m MetricsObserver) *Bus {
	b.metrics = m
	return b
}

// Subscribe регистрирует подписчика
func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// PublishBookingConfirmed доставляет событие всем подписчикам
func (b *Bus) PublishBookingConfirmed(ctx context.Context, e BookingConfirmed) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.ObserveEventEmitted(EventBookingConfirmed)
	}
	b.logger.Info("events: %s booking_id=%d product_id=%d", EventBookingConfirmed, e.BookingID, e.Booking.ProductID)

	for _, s := range subs {
		s.OnBookingConfirmed(ctx, e)
	}
}

// PublishBookingCancelled доставляет событие всем подписчикам
func (b *Bus) PublishBookingCancelled(ctx context.Context, e BookingCancelled) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.ObserveEventEmitted(EventBookingCancelled)
	}
	b.logger.Info("events: %s booking_id=%d product_id=%d date=%s",
		EventBookingCancelled, e.BookingID, e.ProductID, e.Date.Format(domain.DateFormat))

	for _, s := range subs {
		s.OnBookingCancelled(ctx, e)
	}
}
