package order_paid

import (
	"context"

	createOrderBookings "github.com/fp-experiences/booking-service/internal/usecase/create_order_bookings"
)

type CreateOrderBookingsUseCase interface {
	Execute(ctx context.Context, req *createOrderBookings.Request) (*createOrderBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
