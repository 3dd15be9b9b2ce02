package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Participants(t *testing.T) {
	b := &Booking{Adults: 2, Children: 3}
	assert.Equal(t, 5, b.Participants())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		status      BookingStatus
		checkedInAt *time.Time
		want        bool
	}{
		{name: "confirmed", status: StatusConfirmed, want: true},
		{name: "confirmed but checked in", status: StatusConfirmed, checkedInAt: &now, want: false},
		{name: "cancelled", status: StatusCancelled, want: false},
		{name: "completed", status: StatusCompleted, want: false},
		{name: "no show", status: StatusNoShow, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, CheckedInAt: tt.checkedInAt}
			assert.Equal(t, tt.want, b.CanBeCancelled())
		})
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCancelled))
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, confirmed.CanTransitionTo(StatusNoShow))
	assert.False(t, confirmed.CanTransitionTo(StatusConfirmed))

	// Терминальные статусы не откатываются
	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, cancelled.CanTransitionTo(StatusCompleted))

	completed := &Booking{Status: StatusCompleted}
	assert.False(t, completed.CanTransitionTo(StatusCancelled))
}

func TestBooking_Origin(t *testing.T) {
	orderBooking := &Booking{Origin: OrderOrigin{OrderID: 10, OrderItemID: 20}}

	ref, ok := orderBooking.OrderRef()
	assert.True(t, ok)
	assert.Equal(t, int64(10), ref.OrderID)
	assert.Equal(t, int64(20), ref.OrderItemID)

	_, ok = orderBooking.CustomerRef()
	assert.False(t, ok)

	directBooking := &Booking{Origin: DirectOrigin{CustomerID: 77}}

	direct, ok := directBooking.CustomerRef()
	assert.True(t, ok)
	assert.Equal(t, int64(77), direct.CustomerID)

	_, ok = directBooking.OrderRef()
	assert.False(t, ok)
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.True(t, (&Booking{Status: StatusNoShow}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestHold_IsExpired(t *testing.T) {
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	h := &Hold{ExpiresAt: now.Add(15 * time.Minute), Adults: 2, Children: 1}

	assert.Equal(t, 3, h.Seats())
	assert.False(t, h.IsExpired(now))
	assert.True(t, h.IsExpired(now.Add(15*time.Minute)))
	assert.True(t, h.IsExpired(now.Add(16*time.Minute)))
}

func TestSlot_CanFit(t *testing.T) {
	s := &Slot{Capacity: 10, Available: 3}

	assert.True(t, s.CanFit(3))
	assert.False(t, s.CanFit(4))
	assert.False(t, s.CanFit(0))
	assert.True(t, s.IsAvailable())

	full := &Slot{Capacity: 10, Available: 0}
	assert.False(t, full.IsAvailable())
	assert.Equal(t, 100.0, full.OccupancyRate())
}
