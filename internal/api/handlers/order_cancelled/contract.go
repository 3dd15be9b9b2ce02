package order_cancelled

import (
	"context"

	cancelOrderBookings "github.com/fp-experiences/booking-service/internal/usecase/cancel_order_bookings"
)

type CancelOrderBookingsUseCase interface {
	Execute(ctx context.Context, req *cancelOrderBookings.Request) (*cancelOrderBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
