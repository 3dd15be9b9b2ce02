package cancel_booking

import (
	"context"

	"github.com/fp-experiences/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, bookingID int64, customerID int64) (*models.CancelBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
