package domain

import "time"

// Hold is a short-lived, session-scoped soft reservation of seats pending
// checkout completion. A hold counts against slot availability until it is
// converted into a booking or expires.
type Hold struct {
	ID        int64
	ProductID int64
	SlotStart time.Time
	SessionID string
	Adults    int
	Children  int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Seats returns the number of seats the hold reserves
func (h *Hold) Seats() int {
	return h.Adults + h.Children
}

// IsExpired returns true if the hold has expired at the given instant
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
