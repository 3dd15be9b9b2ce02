package create_booking

import (
	"context"

	createCustomerBooking "github.com/fp-experiences/booking-service/internal/usecase/create_customer_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createCustomerBooking.Request) (*createCustomerBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
