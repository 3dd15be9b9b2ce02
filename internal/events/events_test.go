package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fp-experiences/booking-service/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type recordingSubscriber struct {
	confirmed []BookingConfirmed
	cancelled []BookingCancelled
}

func (r *recordingSubscriber) OnBookingConfirmed(ctx context.Context, e BookingConfirmed) {
	r.confirmed = append(r.confirmed, e)
}

func (r *recordingSubscriber) OnBookingCancelled(ctx context.Context, e BookingCancelled) {
	r.cancelled = append(r.cancelled, e)
}

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(noopLogger{})

	first := &recordingSubscriber{}
	second := &recordingSubscriber{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.PublishBookingConfirmed(context.Background(), BookingConfirmed{
		BookingID: 1,
		Booking:   &domain.Booking{ID: 1, ProductID: 5},
	})

	assert.Len(t, first.confirmed, 1)
	assert.Len(t, second.confirmed, 1)
	assert.Equal(t, int64(1), first.confirmed[0].BookingID)
}

func TestBus_CancelledCarriesProductAndDate(t *testing.T) {
	bus := NewBus(noopLogger{})
	sub := &recordingSubscriber{}
	bus.Subscribe(sub)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	bus.PublishBookingCancelled(context.Background(), BookingCancelled{
		BookingID: 3,
		ProductID: 7,
		Date:      date,
	})

	assert.Len(t, sub.cancelled, 1)
	assert.Equal(t, int64(7), sub.cancelled[0].ProductID)
	assert.Equal(t, date, sub.cancelled[0].Date)
}

type countingMetrics struct {
	emitted map[string]int
}

func (c *countingMetrics) ObserveEventEmitted(event string) {
	if c.emitted == nil {
		c.emitted = map[string]int{}
	}
	c.emitted[event]++
}

func TestBus_ReportsMetrics(t *testing.T) {
	m := &countingMetrics{}
	bus := NewBus(noopLogger{}).WithMetrics(m)
	bus.Subscribe(&recordingSubscriber{})

	bus.PublishBookingConfirmed(context.Background(), BookingConfirmed{
		BookingID: 1,
		Booking:   &domain.Booking{ID: 1},
	})
	bus.PublishBookingCancelled(context.Background(), BookingCancelled{BookingID: 1})

	assert.Equal(t, 1, m.emitted[EventBookingConfirmed])
	assert.Equal(t, 1, m.emitted[EventBookingCancelled])
}
