package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/domain"
	productRepo "github.com/fp-experiences/booking-service/internal/infra/storage/product"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

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

type fakeScheduleRepo struct {
	templates map[int][]*domain.ScheduleTemplate // key: dayOfWeek

	forDayCalls    int
	byProductCalls int
}

func (f *fakeScheduleRepo) GetForDay(ctx context.Context, productID int64, dayOfWeek int) ([]*domain.ScheduleTemplate, error) {
	f.forDayCalls++
	return f.templates[dayOfWeek], nil
}

func (f *fakeScheduleRepo) GetByProduct(ctx context.Context, productID int64) ([]*domain.ScheduleTemplate, error) {
	f.byProductCalls++
	var out []*domain.ScheduleTemplate
	for day := 0; day < 7; day++ {
		out = append(out, f.templates[day]...)
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetForSlot(ctx context.Context, filter domain.SlotBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ProductID == filter.ProductID && b.BookingTime == filter.BookingTime && sameDate(b.BookingDate, filter.BookingDate) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetActiveForDay(ctx context.Context, productID int64, date time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ProductID == productID && sameDate(b.BookingDate, date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeHoldRepo struct {
	holds []*domain.Hold
}

func (f *fakeHoldRepo) SumActiveSeats(ctx context.Context, productID int64, slotStart time.Time, now time.Time, excludeSessionID *string) (int, error) {
	total := 0
	for _, h := range f.holds {
		if h.ProductID != productID || !h.SlotStart.Equal(slotStart) || h.IsExpired(now) {
			continue
		}
		if excludeSessionID != nil && h.SessionID == *excludeSessionID {
			continue
		}
		total += h.Seats()
	}
	return total, nil
}

func (f *fakeHoldRepo) GetActiveForRange(ctx context.Context, productID int64, from, to time.Time, now time.Time) ([]*domain.Hold, error) {
	var out []*domain.Hold
	for _, h := range f.holds {
		if h.ProductID == productID && !h.SlotStart.Before(from) && h.SlotStart.Before(to) && !h.IsExpired(now) {
			out = append(out, h)
		}
	}
	return out, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func newTestService(products *fakeProductRepo, schedules *fakeScheduleRepo, bookings *fakeBookingRepo, holds *fakeHoldRepo, clock Clock, holdsEnabled bool) *Service {
	return NewService(products, schedules, bookings, holds, clock, holdsEnabled, fakeLogger{})
}

func TestGetActiveProduct(t *testing.T) {
	products := &fakeProductRepo{products: map[int64]*domain.Product{
		1: {ID: 1, IsActive: true},
		2: {ID: 2, IsActive: false},
	}}
	clock := &siteclock.Fixed{Time: time.Now().UTC()}
	svc := newTestService(products, &fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeHoldRepo{}, clock, true)

	p, err := svc.GetActiveProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	_, err = svc.GetActiveProduct(context.Background(), 2)
	assert.ErrorIs(t, err, ErrProductInactive)

	_, err = svc.GetActiveProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestComputeDay(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	// Вторник 15 июля 2025
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, date.Weekday())

	now := time.Date(2025, 7, 14, 12, 0, 0, 0, rome)
	clock := &siteclock.Fixed{Time: now}

	products := &fakeProductRepo{products: map[int64]*domain.Product{
		1: {ID: 1, IsActive: true},
	}}
	schedules := &fakeScheduleRepo{templates: map[int][]*domain.ScheduleTemplate{
		int(time.Tuesday): {
			{ID: 11, ProductID: 1, DayOfWeek: int(time.Tuesday), StartTime: "10:00", DurationMin: 120, Capacity: 10, IsActive: true},
			{ID: 12, ProductID: 1, DayOfWeek: int(time.Tuesday), StartTime: "15:00", DurationMin: 120, Capacity: 8, IsActive: true},
		},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, ProductID: 1, BookingDate: date, BookingTime: "10:00", Adults: 5, Children: 3, Status: domain.StatusConfirmed},
		{ID: 2, ProductID: 1, BookingDate: date, BookingTime: "15:00", Adults: 4, Children: 3, Status: domain.StatusConfirmed},
	}}

	slotStart10, err := types.TimeString("10:00").OnDate(date, rome)
	require.NoError(t, err)
	holds := &fakeHoldRepo{holds: []*domain.Hold{
		{ID: 1, ProductID: 1, SlotStart: slotStart10, SessionID: "s1", Adults: 1, ExpiresAt: now.Add(10 * time.Minute)},
	}}

	svc := newTestService(products, schedules, bookings, holds, clock, true)

	day, err := svc.ComputeDay(context.Background(), 1, date)
	require.NoError(t, err)

	require.Len(t, day.Slots, 2)
	assert.Equal(t, 18, day.TotalCapacity)
	assert.Equal(t, 2, day.AvailableCapacity)

	first := day.Slots[0]
	assert.Equal(t, types.TimeString("10:00"), first.StartTime)
	assert.Equal(t, types.TimeString("12:00"), first.EndTime)
	assert.Equal(t, 8, first.Booked)
	assert.Equal(t, 1, first.HeldCount)
	assert.Equal(t, 1, first.Available)

	second := day.Slots[1]
	assert.Equal(t, 7, second.Booked)
	assert.Equal(t, 0, second.HeldCount)
	assert.Equal(t, 1, second.Available)
}

func TestComputeDay_OverbookedClampsToZero(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)}

	products := &fakeProductRepo{products: map[int64]*domain.Product{1: {ID: 1, IsActive: true}}}
	schedules := &fakeScheduleRepo{templates: map[int][]*domain.ScheduleTemplate{
		int(time.Tuesday): {
			{ID: 11, ProductID: 1, StartTime: "10:00", DurationMin: 60, Capacity: 5},
		},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, ProductID: 1, BookingDate: date, BookingTime: "10:00", Adults: 6, Status: domain.StatusConfirmed},
	}}

	svc := newTestService(products, schedules, bookings, &fakeHoldRepo{}, clock, true)

	day, err := svc.ComputeDay(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, day.Slots, 1)
	assert.Equal(t, 0, day.Slots[0].Available)
	assert.Equal(t, 0, day.AvailableCapacity)
}

func TestComputeDay_NoTemplates(t *testing.T) {
	date := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)
	clock := &siteclock.Fixed{Time: time.Now().UTC()}

	products := &fakeProductRepo{products: map[int64]*domain.Product{1: {ID: 1, IsActive: true}}}
	svc := newTestService(products, &fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeHoldRepo{}, clock, true)

	day, err := svc.ComputeDay(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Empty(t, day.Slots)
	assert.Equal(t, 0, day.TotalCapacity)
}

func TestComputeDay_MeetingPointFallback(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	clock := &siteclock.Fixed{Time: time.Now().UTC()}

	productMP := int64(100)
	templateMP := int64(200)

	products := &fakeProductRepo{products: map[int64]*domain.Product{
		1: {ID: 1, IsActive: true, DefaultMeetingPointID: &productMP},
	}}
	schedules := &fakeScheduleRepo{templates: map[int][]*domain.ScheduleTemplate{
		int(time.Tuesday): {
			{ID: 11, StartTime: "10:00", DurationMin: 60, Capacity: 5, MeetingPointID: &templateMP},
			{ID: 12, StartTime: "12:00", DurationMin: 60, Capacity: 5},
		},
	}}

	svc := newTestService(products, schedules, &fakeBookingRepo{}, &fakeHoldRepo{}, clock, true)

	day, err := svc.ComputeDay(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, day.Slots, 2)

	// Точка сбора шаблона имеет приоритет над продуктовой
	require.NotNil(t, day.Slots[0].MeetingPointID)
	assert.Equal(t, templateMP, *day.Slots[0].MeetingPointID)
	require.NotNil(t, day.Slots[1].MeetingPointID)
	assert.Equal(t, productMP, *day.Slots[1].MeetingPointID)
}

func TestComputeRange_SkipsEmptyDays(t *testing.T) {
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)}

	products := &fakeProductRepo{products: map[int64]*domain.Product{1: {ID: 1, IsActive: true}}}
	schedules := &fakeScheduleRepo{templates: map[int][]*domain.ScheduleTemplate{
		int(time.Tuesday): {
			{ID: 11, StartTime: "10:00", DurationMin: 60, Capacity: 5},
		},
	}}

	svc := newTestService(products, schedules, &fakeBookingRepo{}, &fakeHoldRepo{}, clock, true)

	// Понедельник - воскресенье: шаблон есть только на вторник
	from := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)

	days, err := svc.ComputeRange(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, time.Tuesday, days[0].Date.Weekday())
	assert.Equal(t, 5, days[0].TotalCapacity)

	// Недельное расписание читается один раз на весь интервал
	assert.Equal(t, 1, schedules.byProductCalls)
	assert.Equal(t, 0, schedules.forDayCalls)
}

func TestResolveSlot(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	clock := &siteclock.Fixed{Time: time.Now().UTC()}

	schedules := &fakeScheduleRepo{templates: map[int][]*domain.ScheduleTemplate{
		int(time.Tuesday): {
			{ID: 11, StartTime: "10:00", DurationMin: 60, Capacity: 5},
		},
	}}
	svc := newTestService(&fakeProductRepo{}, schedules, &fakeBookingRepo{}, &fakeHoldRepo{}, clock, true)

	tpl, err := svc.ResolveSlot(context.Background(), 1, date, "10:00")
	require.NoError(t, err)
	assert.Equal(t, int64(11), tpl.ID)

	_, err = svc.ResolveSlot(context.Background(), 1, date, "11:00")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestHeldSeats(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	clock := &siteclock.Fixed{Time: now}
	slotStart := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	holds := &fakeHoldRepo{holds: []*domain.Hold{
		{ID: 1, ProductID: 1, SlotStart: slotStart, SessionID: "mine", Adults: 2, ExpiresAt: now.Add(5 * time.Minute)},
		{ID: 2, ProductID: 1, SlotStart: slotStart, SessionID: "other", Adults: 3, ExpiresAt: now.Add(5 * time.Minute)},
		{ID: 3, ProductID: 1, SlotStart: slotStart, SessionID: "expired", Adults: 4, ExpiresAt: now.Add(-time.Minute)},
	}}

	svc := newTestService(&fakeProductRepo{}, &fakeScheduleRepo{}, &fakeBookingRepo{}, holds, clock, true)

	total, err := svc.HeldSeats(context.Background(), 1, slotStart, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	mine := "mine"
	excluded, err := svc.HeldSeats(context.Background(), 1, slotStart, &mine)
	require.NoError(t, err)
	assert.Equal(t, 3, excluded)
}

func TestHeldSeats_Disabled(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	clock := &siteclock.Fixed{Time: now}
	slotStart := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	holds := &fakeHoldRepo{holds: []*domain.Hold{
		{ID: 1, ProductID: 1, SlotStart: slotStart, SessionID: "s", Adults: 2, ExpiresAt: now.Add(5 * time.Minute)},
	}}

	svc := newTestService(&fakeProductRepo{}, &fakeScheduleRepo{}, &fakeBookingRepo{}, holds, clock, false)

	total, err := svc.HeldSeats(context.Background(), 1, slotStart, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
