package availabilitycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Cache кеш ответов доступности в Redis
//
// Ключ - пара (product, date): ровно та гранулярность, на которой
// бронирования и отмены меняют доступность. События бронирований
// инвалидируют ключ, поэтому TTL здесь лишь страховка от пропущенной
// инвалидации, а не источник консистентности
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// New создает новый кеш доступности
func New(client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetDay возвращает закешированный ответ доступности на дату
// Промах кеша и недоступность Redis неразличимы для вызывающего:
// обе ситуации означают "считай заново"
func (c *Cache) GetDay(ctx context.Context, productID int64, date time.Time) ([]byte, bool) {
	payload, err := c.client.Get(ctx, dayKey(productID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("availabilitycache: get failed for product=%d date=%s: %v",
				productID, date.Format(domain.DateFormat), err)
		}
		return nil, false
	}
	return payload, true
}

// SetDay кеширует ответ доступности на дату
// Ошибка записи не мешает отдать ответ клиенту
func (c *Cache) SetDay(ctx context.Context, productID int64, date time.Time, payload []byte) {
	if err := c.client.Set(ctx, dayKey(productID, date), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("availabilitycache: set failed for product=%d date=%s: %v",
			productID, date.Format(domain.DateFormat), err)
	}
}

// OnBookingConfirmed инвалидирует кеш слотов затронутой даты
func (c *Cache) OnBookingConfirmed(ctx context.Context, e events.BookingConfirmed) {
	c.invalidate(ctx, e.Booking.ProductID, e.Booking.BookingDate)
}

// OnBookingCancelled инвалидирует кеш слотов затронутой даты
func (c *Cache) OnBookingCancelled(ctx context.Context, e events.BookingCancelled) {
	c.invalidate(ctx, e.ProductID, e.Date)
}

func (c *Cache) invalidate(ctx context.Context, productID int64, date time.Time) {
	key := dayKey(productID, date)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("availabilitycache: invalidation failed for %s: %v", key, err)
		return
	}
	c.logger.Info("availabilitycache: invalidated %s", key)
}

func dayKey(productID int64, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", productID, date.Format(domain.DateFormat))
}
