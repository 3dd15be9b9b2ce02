package release_hold

import (
	"context"
	"time"
)

type HoldsService interface {
	Enabled() bool
	Release(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error
}

type Clock interface {
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
