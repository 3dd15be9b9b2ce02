package convert_hold

import (
	"context"

	convertHold "github.com/fp-experiences/booking-service/internal/usecase/convert_hold"
)

type ConvertHoldUseCase interface {
	Execute(ctx context.Context, req *convertHold.Request) (*convertHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
