package check_in

import (
	"context"

	"github.com/fp-experiences/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	CheckIn(ctx context.Context, bookingID int64, staffID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
