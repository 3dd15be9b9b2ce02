package create_hold

import (
	"context"

	createHold "github.com/fp-experiences/booking-service/internal/usecase/create_hold"
)

type CreateHoldUseCase interface {
	Execute(ctx context.Context, req *createHold.Request) (*createHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
