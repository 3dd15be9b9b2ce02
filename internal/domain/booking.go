package domain

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// BookingOrigin identifies how a booking entered the system.
// Exactly one of the two variants applies: a paid order line item
// or a direct (mobile app) booking by a customer.
type BookingOrigin interface {
	isBookingOrigin()
}

// OrderOrigin marks a booking created from an e-commerce order line item.
// (OrderID, OrderItemID) is the natural idempotency key for the order path.
type OrderOrigin struct {
	OrderID     int64
	OrderItemID int64
}

func (OrderOrigin) isBookingOrigin() {}

// DirectOrigin marks a booking created outside the order flow, with no
// order linkage. Direct bookings have no natural key and are never deduplicated.
type DirectOrigin struct {
	CustomerID int64
}

func (DirectOrigin) isBookingOrigin() {}

// Booking represents a seat reservation for one experience slot
type Booking struct {
	ID             int64
	BookingNumber  string
	Origin         BookingOrigin
	ProductID      int64
	BookingDate    time.Time
	BookingTime    types.TimeString
	Adults         int
	Children       int
	MeetingPointID *int64
	Status         BookingStatus
	CustomerNotes  *string

	CheckedInAt *time.Time
	CheckedInBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Participants returns the total number of seats the booking occupies
func (b *Booking) Participants() int {
	return b.Adults + b.Children
}

// IsActive returns true if the booking still occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled.
// Completed, no-show and already-cancelled bookings are terminal.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed && b.CheckedInAt == nil
}

// CanBeCheckedIn returns true if the booking can be checked in
func (b *Booking) CanBeCheckedIn() bool {
	return b.Status == StatusConfirmed && b.CheckedInAt == nil
}

// IsTerminal returns true for states that never revert
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// OrderRef returns the order origin if the booking came from the order path
func (b *Booking) OrderRef() (OrderOrigin, bool) {
	origin, ok := b.Origin.(OrderOrigin)
	return origin, ok
}

// CustomerRef returns the direct origin if the booking came from the mobile/direct path
func (b *Booking) CustomerRef() (DirectOrigin, bool) {
	origin, ok := b.Origin.(DirectOrigin)
	return origin, ok
}

// CanTransitionTo reports whether moving to the target status is allowed.
// Transitions are monotonic: confirmed may move to any terminal state,
// terminal states never revert.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status == target {
		return false
	}
	if b.IsTerminal() {
		return false
	}
	switch target {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return b.Status == StatusConfirmed
	default:
		return false
	}
}

// SlotBookingsFilter фильтр бронирований одного слота (product, date, time)
type SlotBookingsFilter struct {
	ProductID   int64
	BookingDate time.Time
	BookingTime types.TimeString
	// ForUpdate запрашивает блокировку строк (только внутри транзакции)
	ForUpdate bool
}
