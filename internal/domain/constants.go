package domain

// Default policy values (match the legacy product metadata defaults)
const (
	DefaultCutoffMinutes          = 120  // 2 hours
	DefaultFreeCancelUntilMinutes = 1440 // 24 hours
	DefaultHoldTTLMinutes         = 15
)

// Business validation constants
const (
	MinParticipants           = 1
	MaxParticipantsPerBooking = 50
	MaxCustomerNotesLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих места в слоте
// Используется при подсчете занятости
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
