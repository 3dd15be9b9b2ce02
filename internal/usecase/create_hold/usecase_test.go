package create_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/domain"
	availabilitySvc "github.com/fp-experiences/booking-service/internal/service/availability"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAvailability struct {
	product    *domain.Product
	productErr error
	template   *domain.ScheduleTemplate
	booked     int
	held       int
	loc        *time.Location

	excludedSession *string
}

func (f *fakeAvailability) GetActiveProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.product, nil
}

func (f *fakeAvailability) ResolveSlot(ctx context.Context, productID int64, date time.Time, startTime types.TimeString) (*domain.ScheduleTemplate, error) {
	if f.template == nil || f.template.StartTime != startTime {
		return nil, availabilitySvc.ErrSlotNotFound
	}
	return f.template, nil
}

func (f *fakeAvailability) CommittedSeats(ctx context.Context, productID int64, date time.Time, startTime types.TimeString, forUpdate bool) (int, error) {
	return f.booked, nil
}

func (f *fakeAvailability) HeldSeats(ctx context.Context, productID int64, slotStart time.Time, excludeSessionID *string) (int, error) {
	f.excludedSession = excludeSessionID
	return f.held, nil
}

func (f *fakeAvailability) SlotInstant(date time.Time, startTime types.TimeString) (time.Time, error) {
	return startTime.OnDate(date, f.loc)
}

type fakeHoldRepo struct {
	created  *domain.Hold
	replaced bool
}

func (f *fakeHoldRepo) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	h.ID = 5
	f.created = h
	return h, nil
}

func (f *fakeHoldRepo) DeleteBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error {
	f.replaced = true
	return nil
}

type fakeHoldsService struct {
	enabled bool
	ttl     time.Duration
}

func (f *fakeHoldsService) Enabled() bool      { return f.enabled }
func (f *fakeHoldsService) TTL() time.Duration { return f.ttl }

func validRequest() *Request {
	return &Request{
		SessionID: "sess-1",
		ProductID: 1,
		Date:      time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Adults:    2,
		Children:  1,
	}
}

func newFakes() (*fakeAvailability, *fakeHoldRepo, *fakeHoldsService, *siteclock.Fixed) {
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)}
	availability := &fakeAvailability{
		product:  &domain.Product{ID: 1, IsActive: true, CutoffMinutes: 120},
		template: &domain.ScheduleTemplate{ID: 11, ProductID: 1, StartTime: "10:00", Capacity: 10},
		loc:      clock.Location(),
	}
	return availability, &fakeHoldRepo{}, &fakeHoldsService{enabled: true, ttl: 15 * time.Minute}, clock
}

func TestExecute_CreatesHold(t *testing.T) {
	availability, holds, holdsSvc, clock := newFakes()
	uc := NewUseCase(availability, holds, holdsSvc, fakeTxManager{}, clock, fakeLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.HoldID)
	assert.Equal(t, 3, resp.Seats)
	assert.Equal(t, clock.Now().Add(15*time.Minute), resp.ExpiresAt)

	// Прежний холд сессии на этот слот заменен новым
	assert.True(t, holds.replaced)
	require.NotNil(t, holds.created)
	assert.Equal(t, "sess-1", holds.created.SessionID)

	// Собственная сессия исключена из подсчета занятости
	require.NotNil(t, availability.excludedSession)
	assert.Equal(t, "sess-1", *availability.excludedSession)
}

func TestExecute_HoldsDisabled(t *testing.T) {
	availability, holds, _, clock := newFakes()
	uc := NewUseCase(availability, holds, &fakeHoldsService{enabled: false}, fakeTxManager{}, clock, fakeLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldsDisabled)
}

func TestExecute_SlotFull(t *testing.T) {
	availability, holds, holdsSvc, clock := newFakes()
	availability.booked = 6
	availability.held = 2

	uc := NewUseCase(availability, holds, holdsSvc, fakeTxManager{}, clock, fakeLogger{})

	// 6 + 2 + 3 > 10
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, holds.created)
}

func TestExecute_ExactFitSucceeds(t *testing.T) {
	availability, holds, holdsSvc, clock := newFakes()
	availability.booked = 5
	availability.held = 2

	uc := NewUseCase(availability, holds, holdsSvc, fakeTxManager{}, clock, fakeLogger{})

	// 5 + 2 + 3 == 10
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Seats)
}

func TestExecute_CutoffViolation(t *testing.T) {
	availability, holds, holdsSvc, _ := newFakes()
	// До слота 10:00 остается 90 минут при cutoff 120
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 15, 8, 30, 0, 0, time.UTC)}
	availability.loc = clock.Location()

	uc := NewUseCase(availability, holds, holdsSvc, fakeTxManager{}, clock, fakeLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCutoffViolation)
	assert.Nil(t, holds.created)
}

func TestExecute_ProductAndSlotErrors(t *testing.T) {
	t.Run("inactive product", func(t *testing.T) {
		availability, holds, holdsSvc, clock := newFakes()
		availability.productErr = availabilitySvc.ErrProductInactive

		uc := NewUseCase(availability, holds, holdsSvc, fakeTxManager{}, clock, fakeLogger{})
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("unknown slot", func(t *testing.T) {
		availability, holds, holdsSvc, clock := newFakes()
		uc := NewUseCase(availability, holds, holdsSvc, fakeTxManager{}, clock, fakeLogger{})

		req := validRequest()
		req.StartTime = "11:00"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}
