package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	productRepo "github.com/fp-experiences/booking-service/internal/infra/storage/product"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// Service калькулятор доступности слотов
// Слоты не хранятся в БД: они порождаются из недельных шаблонов на лету,
// а занятость считается из бронирований и активных холдов
type Service struct {
	productRepo  ProductRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	clock        Clock
	holdsEnabled bool
	logger       Logger
}

// NewService создает новый экземпляр калькулятора доступности
func NewService(
	productRepo ProductRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	clock Clock,
	holdsEnabled bool,
	logger Logger,
) *Service {
	return &Service{
		productRepo:  productRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		clock:        clock,
		holdsEnabled: holdsEnabled,
		logger:       logger,
	}
}

// GetActiveProduct получает продукт и проверяет, что он продается
func (s *Service) GetActiveProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: GetActiveProduct - repository error: %v", ErrInternal, err)
	}

	if !product.IsActive {
		return nil, ErrProductInactive
	}

	return product, nil
}

// ComputeDay вычисляет доступность всех слотов продукта на дату
// Слоты отсортированы по времени начала. День без шаблонов дает пустой список
func (s *Service) ComputeDay(ctx context.Context, productID int64, date time.Time) (*domain.DayAvailability, error) {
	product, err := s.GetActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.computeDayForProduct(ctx, product, date)
}

// ComputeRange вычисляет посуточную сводку доступности в интервале [from, to]
// Недельное расписание читается один раз на весь интервал.
// Даты без единого шаблона в результат не попадают
func (s *Service) ComputeRange(ctx context.Context, productID int64, from, to time.Time) ([]*domain.DayAvailability, error) {
	product, err := s.GetActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	templates, err := s.scheduleRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: ComputeRange - schedules error: %v", ErrInternal, err)
	}

	byWeekday := make(map[int][]*domain.ScheduleTemplate)
	for _, tpl := range templates {
		byWeekday[tpl.DayOfWeek] = append(byWeekday[tpl.DayOfWeek], tpl)
	}

	days := make([]*domain.DayAvailability, 0)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day, err := s.computeDaySlots(ctx, product, date, byWeekday[int(date.Weekday())])
		if err != nil {
			return nil, err
		}

		if len(day.Slots) == 0 {
			continue
		}

		days = append(days, day)
	}

	return days, nil
}

// ResolveSlot находит шаблон, порождающий слот продукта на дату и время
func (s *Service) ResolveSlot(ctx context.Context, productID int64, date time.Time, startTime types.TimeString) (*domain.ScheduleTemplate, error) {
	templates, err := s.scheduleRepo.GetForDay(ctx, productID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveSlot - repository error: %v", ErrInternal, err)
	}

	for _, tpl := range templates {
		if tpl.StartTime == startTime {
			return tpl, nil
		}
	}

	return nil, ErrSlotNotFound
}

// CommittedSeats считает занятые подтвержденными бронированиями места слота
// forUpdate=true внутри транзакции блокирует строки бронирований, фиксируя
// занятость на время последовательности проверка-запись
func (s *Service) CommittedSeats(ctx context.Context, productID int64, date time.Time, startTime types.TimeString, forUpdate bool) (int, error) {
	bookings, err := s.bookingRepo.GetForSlot(ctx, domain.SlotBookingsFilter{
		ProductID:   productID,
		BookingDate: date,
		BookingTime: startTime,
		ForUpdate:   forUpdate,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: CommittedSeats - repository error: %v", ErrInternal, err)
	}

	total := 0
	for _, b := range bookings {
		total += b.Participants()
	}

	return total, nil
}

// HeldSeats считает места в активных холдах слота
// excludeSessionID исключает холды собственной сессии запрашивающего
// При выключенных холдах всегда возвращает 0
func (s *Service) HeldSeats(ctx context.Context, productID int64, slotStart time.Time, excludeSessionID *string) (int, error) {
	if !s.holdsEnabled {
		return 0, nil
	}

	held, err := s.holdRepo.SumActiveSeats(ctx, productID, slotStart, s.clock.Now(), excludeSessionID)
	if err != nil {
		return 0, fmt.Errorf("%w: HeldSeats - repository error: %v", ErrInternal, err)
	}

	return held, nil
}

// SlotInstant возвращает момент начала слота в таймзоне площадки
func (s *Service) SlotInstant(date time.Time, startTime types.TimeString) (time.Time, error) {
	return startTime.OnDate(date, s.clock.Location())
}

func (s *Service) computeDayForProduct(ctx context.Context, product *domain.Product, date time.Time) (*domain.DayAvailability, error) {
	templates, err := s.scheduleRepo.GetForDay(ctx, product.ID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("%w: computeDayForProduct - schedules error: %v", ErrInternal, err)
	}

	return s.computeDaySlots(ctx, product, date, templates)
}

// computeDaySlots считает доступность дня по заранее прочитанным шаблонам
func (s *Service) computeDaySlots(ctx context.Context, product *domain.Product, date time.Time, templates []*domain.ScheduleTemplate) (*domain.DayAvailability, error) {
	day := &domain.DayAvailability{
		Date:  date,
		Slots: make([]domain.Slot, 0),
	}

	if len(templates) == 0 {
		return day, nil
	}

	bookedByTime, err := s.bookedSeatsByTime(ctx, product.ID, date)
	if err != nil {
		return nil, err
	}

	heldByStart, err := s.heldSeatsByStart(ctx, product.ID, date)
	if err != nil {
		return nil, err
	}

	for _, tpl := range templates {
		endTime, err := tpl.EndTime()
		if err != nil {
			s.logger.Warn("computeDaySlots: schedule id=%d has invalid duration: %v", tpl.ID, err)
			continue
		}

		slotStart, err := s.SlotInstant(date, tpl.StartTime)
		if err != nil {
			s.logger.Warn("computeDaySlots: schedule id=%d has invalid start time: %v", tpl.ID, err)
			continue
		}
		booked := bookedByTime[tpl.StartTime.String()]
		held := heldByStart[slotStart.Unix()]

		available := tpl.Capacity - booked - held
		if available < 0 {
			available = 0
		}

		meetingPointID := tpl.MeetingPointID
		if meetingPointID == nil {
			meetingPointID = product.DefaultMeetingPointID
		}

		day.Slots = append(day.Slots, domain.Slot{
			ProductID:      product.ID,
			ScheduleID:     tpl.ID,
			Date:           date,
			StartTime:      tpl.StartTime,
			EndTime:        endTime,
			Capacity:       tpl.Capacity,
			Booked:         booked,
			HeldCount:      held,
			Available:      available,
			AdultPrice:     tpl.PriceAdult,
			ChildPrice:     tpl.PriceChild,
			MeetingPointID: meetingPointID,
			Lang:           tpl.Lang,
		})

		day.TotalCapacity += tpl.Capacity
		day.AvailableCapacity += available
	}

	return day, nil
}

// bookedSeatsByTime группирует занятые бронированиями места дня по времени начала
func (s *Service) bookedSeatsByTime(ctx context.Context, productID int64, date time.Time) (map[string]int, error) {
	bookings, err := s.bookingRepo.GetActiveForDay(ctx, productID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: bookedSeatsByTime - repository error: %v", ErrInternal, err)
	}

	byTime := make(map[string]int, len(bookings))
	for _, b := range bookings {
		byTime[b.BookingTime.String()] += b.Participants()
	}

	return byTime, nil
}

// heldSeatsByStart группирует места активных холдов дня по моменту начала слота
func (s *Service) heldSeatsByStart(ctx context.Context, productID int64, date time.Time) (map[int64]int, error) {
	byStart := make(map[int64]int)
	if !s.holdsEnabled {
		return byStart, nil
	}

	loc := s.clock.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	holds, err := s.holdRepo.GetActiveForRange(ctx, productID, dayStart, dayEnd, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: heldSeatsByStart - repository error: %v", ErrInternal, err)
	}

	for _, h := range holds {
		byStart[h.SlotStart.Unix()] += h.Seats()
	}

	return byStart, nil
}
