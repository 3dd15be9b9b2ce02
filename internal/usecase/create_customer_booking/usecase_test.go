package create_customer_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	bookingsSvc "github.com/fp-experiences/booking-service/internal/service/bookings"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeCommitter struct {
	lastParams bookingsSvc.CommitParams
	booking    *domain.Booking
	err        error
}

func (f *fakeCommitter) Commit(ctx context.Context, p bookingsSvc.CommitParams) (*domain.Booking, error) {
	f.lastParams = p
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

type fakeEventBus struct {
	confirmed []events.BookingConfirmed
}

func (f *fakeEventBus) PublishBookingConfirmed(ctx context.Context, e events.BookingConfirmed) {
	f.confirmed = append(f.confirmed, e)
}

func validRequest() *Request {
	return &Request{
		CustomerID: 42,
		ProductID:  1,
		Date:       time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Adults:     2,
		Children:   1,
	}
}

func TestExecute_Success(t *testing.T) {
	committer := &fakeCommitter{booking: &domain.Booking{
		ID:            10,
		BookingNumber: "bn-10",
		Origin:        domain.DirectOrigin{CustomerID: 42},
		ProductID:     1,
		BookingDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		BookingTime:   "10:00",
		Adults:        2,
		Children:      1,
		Status:        domain.StatusConfirmed,
	}}
	txManager := &fakeTxManager{}
	bus := &fakeEventBus{}

	uc := NewUseCase(committer, txManager, bus, fakeLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "bn-10", resp.BookingNumber)
	assert.Equal(t, int64(42), resp.CustomerID)
	assert.Equal(t, 3, resp.Participants)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Коммит шел в сериализуемой транзакции с прямым происхождением
	assert.Equal(t, 1, txManager.calls)
	origin, ok := committer.lastParams.Origin.(domain.DirectOrigin)
	require.True(t, ok)
	assert.Equal(t, int64(42), origin.CustomerID)

	// Событие опубликовано после коммита
	require.Len(t, bus.confirmed, 1)
	assert.Equal(t, int64(10), bus.confirmed[0].BookingID)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeCommitter{}, &fakeTxManager{}, &fakeEventBus{}, fakeLogger{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "missing customer", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "missing product", mutate: func(r *Request) { r.ProductID = 0 }},
		{name: "zero participants", mutate: func(r *Request) { r.Adults, r.Children = 0, 0 }},
		{name: "negative children", mutate: func(r *Request) { r.Children = -1 }},
		{name: "too many participants", mutate: func(r *Request) { r.Adults = 51; r.Children = 0 }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
		{name: "notes too long", mutate: func(r *Request) {
			long := make([]byte, 501)
			s := string(long)
			r.Notes = &s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MapsCommitErrors(t *testing.T) {
	tests := []struct {
		name      string
		commitErr error
		wantErr   error
	}{
		{name: "product not found", commitErr: bookingsSvc.ErrProductNotFound, wantErr: ErrProductNotFound},
		{name: "slot not found", commitErr: bookingsSvc.ErrSlotNotFound, wantErr: ErrSlotNotFound},
		{name: "slot full", commitErr: bookingsSvc.ErrSlotNotAvailable, wantErr: ErrSlotNotAvailable},
		{name: "cutoff", commitErr: bookingsSvc.ErrCutoffViolation, wantErr: ErrCutoffViolation},
		{name: "internal", commitErr: bookingsSvc.ErrInternal, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &fakeEventBus{}
			uc := NewUseCase(&fakeCommitter{err: tt.commitErr}, &fakeTxManager{}, bus, fakeLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)

			// Неудачный коммит не публикует событий
			assert.Empty(t, bus.confirmed)
		})
	}
}
