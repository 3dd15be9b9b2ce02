package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	bookingRepo "github.com/fp-experiences/booking-service/internal/infra/storage/booking"
	productRepo "github.com/fp-experiences/booking-service/internal/infra/storage/product"
	availabilitySvc "github.com/fp-experiences/booking-service/internal/service/availability"
	"github.com/fp-experiences/booking-service/internal/service/bookings/models"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking

	createErr    error
	checkInErrs  []error // очередь ответов CheckIn
	checkInCalls int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for id := int64(1); id <= f.nextID; id++ {
		b, ok := f.bookings[id]
		if !ok {
			continue
		}
		ref, ok := b.CustomerRef()
		if !ok || ref.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) CheckIn(ctx context.Context, id int64, staffID int64, at time.Time) error {
	f.checkInCalls++
	if len(f.checkInErrs) > 0 {
		err := f.checkInErrs[0]
		f.checkInErrs = f.checkInErrs[1:]
		if err != nil {
			return err
		}
	}
	b, ok := f.bookings[id]
	if !ok || !b.CanBeCheckedIn() {
		// Как и SQL UPDATE с условием: ноль обновленных строк
		return bookingRepo.ErrBookingNotFound
	}
	b.CheckedInAt = &at
	b.CheckedInBy = &staffID
	return nil
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	return p, nil
}

type fakeAvailability struct {
	product    *domain.Product
	productErr error
	template   *domain.ScheduleTemplate
	booked     int
	held       int
	loc        *time.Location
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
	return f.held, nil
}

func (f *fakeAvailability) SlotInstant(date time.Time, startTime types.TimeString) (time.Time, error) {
	return startTime.OnDate(date, f.loc)
}

type fakeEventBus struct {
	cancelled []events.BookingCancelled
}

func (f *fakeEventBus) PublishBookingCancelled(ctx context.Context, e events.BookingCancelled) {
	f.cancelled = append(f.cancelled, e)
}

type fakeSchemaHealer struct {
	calls int
	err   error
}

func (f *fakeSchemaHealer) EnsureSchema(ctx context.Context) error {
	f.calls++
	return f.err
}

type fixture struct {
	svc          *Service
	bookingRepo  *fakeBookingRepo
	productRepo  *fakeProductRepo
	availability *fakeAvailability
	bus          *fakeEventBus
	healer       *fakeSchemaHealer
	clock        *siteclock.Fixed
}

// Слот 2025-07-15 10:00, дедлайн бесплатной отмены 2025-07-14 10:00.
// Часы фикстуры стоят за сутки до дедлайна
func newFixture() *fixture {
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 13, 10, 0, 0, 0, time.UTC)}
	product := &domain.Product{
		ID:                     1,
		IsActive:               true,
		CutoffMinutes:          120,
		FreeCancelUntilMinutes: 1440,
		CancellationFeePercent: 20,
	}

	f := &fixture{
		bookingRepo: newFakeBookingRepo(),
		productRepo: &fakeProductRepo{products: map[int64]*domain.Product{1: product}},
		availability: &fakeAvailability{
			product:  product,
			template: &domain.ScheduleTemplate{ID: 11, ProductID: 1, StartTime: "10:00", Capacity: 10},
			loc:      clock.Location(),
		},
		bus:    &fakeEventBus{},
		healer: &fakeSchemaHealer{},
		clock:  clock,
	}
	f.svc = NewService(f.bookingRepo, f.productRepo, f.availability, fakeTxManager{}, f.bus, f.healer, clock, fakeLogger{})
	return f
}

func commitParams() CommitParams {
	return CommitParams{
		Origin:    domain.DirectOrigin{CustomerID: 42},
		ProductID: 1,
		Date:      time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Adults:    2,
		Children:  1,
	}
}

func TestCommit_Success(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.BookingNumber)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, 3, created.Participants())
}

func TestCommit_CapacityCheck(t *testing.T) {
	f := newFixture()
	f.availability.booked = 6
	f.availability.held = 2

	// 6 + 2 + 3 > 10
	_, err := f.svc.Commit(context.Background(), commitParams())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Ровно до вместимости проходит: 5 + 2 + 3 == 10
	f.availability.booked = 5
	_, err = f.svc.Commit(context.Background(), commitParams())
	assert.NoError(t, err)
}

func TestCommit_Cutoff(t *testing.T) {
	f := newFixture()
	// До слота 10:00 остается 60 минут при cutoff 120
	f.clock.Time = time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)

	_, err := f.svc.Commit(context.Background(), commitParams())
	assert.ErrorIs(t, err, ErrCutoffViolation)
}

func TestCommit_MeetingPointFallback(t *testing.T) {
	templateMP := int64(200)
	productMP := int64(300)

	t.Run("explicit request wins", func(t *testing.T) {
		f := newFixture()
		f.availability.template.MeetingPointID = &templateMP

		requested := int64(100)
		p := commitParams()
		p.MeetingPointID = &requested

		created, err := f.svc.Commit(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, requested, *created.MeetingPointID)
	})

	t.Run("template over product default", func(t *testing.T) {
		f := newFixture()
		f.availability.template.MeetingPointID = &templateMP
		f.availability.product.DefaultMeetingPointID = &productMP

		created, err := f.svc.Commit(context.Background(), commitParams())
		require.NoError(t, err)
		assert.Equal(t, templateMP, *created.MeetingPointID)
	})

	t.Run("product default as last resort", func(t *testing.T) {
		f := newFixture()
		f.availability.product.DefaultMeetingPointID = &productMP

		created, err := f.svc.Commit(context.Background(), commitParams())
		require.NoError(t, err)
		assert.Equal(t, productMP, *created.MeetingPointID)
	})
}

func TestCommit_MapsErrors(t *testing.T) {
	t.Run("inactive product", func(t *testing.T) {
		f := newFixture()
		f.availability.productErr = availabilitySvc.ErrProductInactive

		_, err := f.svc.Commit(context.Background(), commitParams())
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newFixture()
		p := commitParams()
		p.StartTime = "11:00"

		_, err := f.svc.Commit(context.Background(), p)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("duplicate order item", func(t *testing.T) {
		f := newFixture()
		f.bookingRepo.createErr = bookingRepo.ErrDuplicateOrderItem

		_, err := f.svc.Commit(context.Background(), commitParams())
		assert.ErrorIs(t, err, ErrDuplicateOrderItem)
	})
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	resp, err := f.svc.GetByID(context.Background(), created.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, int64(42), *resp.CustomerID)

	// Чужой клиент не видит бронирование
	_, err = f.svc.GetByID(context.Background(), created.ID, 43)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), 999, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_OrderBookingHiddenFromCustomers(t *testing.T) {
	f := newFixture()
	p := commitParams()
	p.Origin = domain.OrderOrigin{OrderID: 500, OrderItemID: 1}

	created, err := f.svc.Commit(context.Background(), p)
	require.NoError(t, err)

	// Бронированиями пути заказа управляет модуль заказов через вебхук
	_, err = f.svc.GetByID(context.Background(), created.ID, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_FreeBeforeDeadline(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	resp, err := f.svc.Cancel(context.Background(), created.ID, 42)
	require.NoError(t, err)

	assert.True(t, resp.WasFree)
	assert.Equal(t, 0.0, resp.AppliedFee)
	assert.Equal(t, string(domain.StatusCancelled), resp.Booking.Status)

	require.Len(t, f.bus.cancelled, 1)
	assert.Equal(t, created.ID, f.bus.cancelled[0].BookingID)
	assert.Equal(t, int64(1), f.bus.cancelled[0].ProductID)
	assert.Equal(t, commitParams().Date, f.bus.cancelled[0].Date)
}

func TestCancel_WithFeePastDeadline(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	// Меньше суток до слота: отмена допустима, но со сбором
	f.clock.Time = time.Date(2025, 7, 14, 18, 0, 0, 0, time.UTC)

	resp, err := f.svc.Cancel(context.Background(), created.ID, 42)
	require.NoError(t, err)

	assert.False(t, resp.WasFree)
	assert.Equal(t, 20.0, resp.AppliedFee)
}

func TestCancel_Guards(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), created.ID, 43)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Повторная отмена отклоняется
	_, err = f.svc.Cancel(context.Background(), created.ID, 42)
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), created.ID, 42)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Len(t, f.bus.cancelled, 1)
}

func TestCancellationRules(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	rules, err := f.svc.CancellationRules(context.Background(), created.ID, 42)
	require.NoError(t, err)

	assert.True(t, rules.CanCancel)
	assert.True(t, rules.IsFree)
	assert.Equal(t, 0.0, rules.AppliedFee)
	assert.Equal(t, 20.0, rules.FeePercent)
	assert.Equal(t, time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC), rules.FreeUntil)

	// Запрос правил не меняет состояния бронирования
	resp, err := f.svc.GetByID(context.Background(), created.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestCancellationRules_NotCancellable(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)
	require.NoError(t, f.bookingRepo.UpdateStatus(context.Background(), created.ID, domain.StatusCompleted))

	rules, err := f.svc.CancellationRules(context.Background(), created.ID, 42)
	require.NoError(t, err)
	assert.False(t, rules.CanCancel)
}

func TestCheckIn(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	resp, err := f.svc.CheckIn(context.Background(), created.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, resp.CheckedInAt)
	assert.Equal(t, f.clock.Now(), *resp.CheckedInAt)

	// Повторный чекин отклоняется
	_, err = f.svc.CheckIn(context.Background(), created.ID, 7)
	assert.ErrorIs(t, err, ErrCannotCheckIn)

	_, err = f.svc.CheckIn(context.Background(), 999, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCheckIn_SchemaSelfHeal(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	// Первая попытка упирается в пропавшую таблицу, после повторного
	// применения миграций чекин проходит
	f.bookingRepo.checkInErrs = []error{bookingRepo.ErrTableMissing}

	resp, err := f.svc.CheckIn(context.Background(), created.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, resp.CheckedInAt)

	assert.Equal(t, 1, f.healer.calls)
	assert.Equal(t, 2, f.bookingRepo.checkInCalls)
}

func TestCheckIn_SchemaHealFailure(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	f.bookingRepo.checkInErrs = []error{bookingRepo.ErrTableMissing}
	f.healer.err = errors.New("migrate failed")

	_, err = f.svc.CheckIn(context.Background(), created.ID, 7)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.bookingRepo.checkInCalls)
}

func TestGetCustomerBookings(t *testing.T) {
	f := newFixture()

	first, err := f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)
	_, err = f.svc.Commit(context.Background(), commitParams())
	require.NoError(t, err)

	other := commitParams()
	other.Origin = domain.DirectOrigin{CustomerID: 99}
	_, err = f.svc.Commit(context.Background(), other)
	require.NoError(t, err)

	list, err := f.svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 42})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	// Фильтр по статусу
	_, err = f.svc.Cancel(context.Background(), first.ID, 42)
	require.NoError(t, err)

	status := string(domain.StatusCancelled)
	list, err = f.svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 42, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, first.ID, list.Bookings[0].ID)

	bad := "bogus"
	_, err = f.svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 42, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
