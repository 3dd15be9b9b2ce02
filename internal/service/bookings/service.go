package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	bookingRepo "github.com/fp-experiences/booking-service/internal/infra/storage/booking"
	productRepo "github.com/fp-experiences/booking-service/internal/infra/storage/product"
	"github.com/fp-experiences/booking-service/internal/policy"
	availabilitySvc "github.com/fp-experiences/booking-service/internal/service/availability"
	"github.com/fp-experiences/booking-service/internal/service/bookings/models"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// ProductRepository интерфейс репозитория продуктов
// Отдельный от калькулятора доступ: отмена и правила отмены должны работать
// и для бронирований снятых с продажи продуктов
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	productRepo  ProductRepository
	availability AvailabilityService
	txManager    TransactionManager
	eventBus     EventPublisher
	schemaHealer SchemaHealer
	clock        siteclock.Clock
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	productRepo ProductRepository,
	availability AvailabilityService,
	txManager TransactionManager,
	eventBus EventPublisher,
	schemaHealer SchemaHealer,
	clock siteclock.Clock,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		productRepo:  productRepo,
		availability: availability,
		txManager:    txManager,
		eventBus:     eventBus,
		schemaHealer: schemaHealer,
		clock:        clock,
		logger:       logger,
	}
}

// CommitParams параметры единого внутреннего коммита бронирования
// Оба пути создания (заказ и прямой) сходятся в Commit
type CommitParams struct {
	Origin         domain.BookingOrigin
	ProductID      int64
	Date           time.Time
	StartTime      types.TimeString
	Adults         int
	Children       int
	MeetingPointID *int64
	CustomerNotes  *string
	// ExcludeSessionID исключает холды собственной сессии из занятости
	// при конвертации холда в бронирование
	ExcludeSessionID *string
}

// Commit выполняет единый коммит бронирования: повторная проверка вместимости
// и cutoff под блокировкой, затем вставка. Обязан вызываться внутри
// сериализуемой транзакции - проверка и запись должны быть одной
// атомарной последовательностью
func (s *Service) Commit(ctx context.Context, p CommitParams) (*domain.Booking, error) {
	product, err := s.availability.GetActiveProduct(ctx, p.ProductID)
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrProductNotFound) || errors.Is(err, availabilitySvc.ErrProductInactive) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: Commit - get product: %v", ErrInternal, err)
	}

	tpl, err := s.availability.ResolveSlot(ctx, p.ProductID, p.Date, p.StartTime)
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Commit - resolve slot: %v", ErrInternal, err)
	}

	cutoff, err := policy.ValidateCutoff(p.Date, p.StartTime, product.CutoffMinutes, s.clock)
	if err != nil {
		return nil, fmt.Errorf("%w: Commit - cutoff check: %v", ErrInternal, err)
	}
	if !cutoff.Valid {
		return nil, fmt.Errorf("%w: %s", ErrCutoffViolation, cutoff.Message)
	}

	booked, err := s.availability.CommittedSeats(ctx, p.ProductID, p.Date, p.StartTime, true)
	if err != nil {
		return nil, fmt.Errorf("%w: Commit - count booked seats: %v", ErrInternal, err)
	}

	slotStart, err := s.availability.SlotInstant(p.Date, p.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: Commit - slot instant: %v", ErrInternal, err)
	}

	held, err := s.availability.HeldSeats(ctx, p.ProductID, slotStart, p.ExcludeSessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: Commit - count held seats: %v", ErrInternal, err)
	}

	requested := p.Adults + p.Children
	if booked+held+requested > tpl.Capacity {
		s.logger.Warn("Commit: slot product=%d date=%s time=%s over capacity: booked=%d held=%d requested=%d capacity=%d",
			p.ProductID, p.Date.Format(domain.DateFormat), p.StartTime, booked, held, requested, tpl.Capacity)
		return nil, ErrSlotNotAvailable
	}

	meetingPointID := p.MeetingPointID
	if meetingPointID == nil {
		meetingPointID = tpl.MeetingPointID
	}
	if meetingPointID == nil {
		meetingPointID = product.DefaultMeetingPointID
	}

	created, err := s.bookingRepo.Create(ctx, &domain.Booking{
		BookingNumber:  uuid.NewString(),
		Origin:         p.Origin,
		ProductID:      p.ProductID,
		BookingDate:    p.Date,
		BookingTime:    p.StartTime,
		Adults:         p.Adults,
		Children:       p.Children,
		MeetingPointID: meetingPointID,
		Status:         domain.StatusConfirmed,
		CustomerNotes:  p.CustomerNotes,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateOrderItem) {
			return nil, ErrDuplicateOrderItem
		}
		return nil, fmt.Errorf("%w: Commit - create booking: %v", ErrInternal, err)
	}

	s.logger.Info("Commit: created booking id=%d number=%s product=%d date=%s time=%s seats=%d",
		created.ID, created.BookingNumber, created.ProductID,
		created.BookingDate.Format(domain.DateFormat), created.BookingTime, created.Participants())

	return created, nil
}

// GetByID получает бронирование по ID
// Клиент видит только собственные прямые бронирования
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkCustomerAccess(booking, customerID); err != nil {
		s.logger.Warn("GetByID: access denied for customer=%d to booking id=%d", customerID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, status)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по инициативе клиента
// Клиент может отменить только собственное прямое бронирование.
// Отмена после дедлайна бесплатной отмены допустима, но со сбором
func (s *Service) Cancel(ctx context.Context, bookingID int64, customerID int64) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by customer=%d", bookingID, customerID)

	var cancelled *domain.Booking
	var decision domain.CancellationDecision

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		if err := checkCustomerAccess(booking, customerID); err != nil {
			s.logger.Warn("Cancel: access denied for customer=%d to booking id=%d", customerID, bookingID)
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		decision, err = s.evaluateCancellation(txCtx, booking)
		if err != nil {
			return err
		}
		if !decision.CanCancel {
			return ErrCannotCancel
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.eventBus.PublishBookingCancelled(ctx, events.BookingCancelled{
		BookingID: cancelled.ID,
		ProductID: cancelled.ProductID,
		Date:      cancelled.BookingDate,
	})

	rules := models.FromDomainDecision(cancelled.ID, decision)
	s.logger.Info("Cancel: cancelled booking id=%d free=%v fee=%.1f%%", cancelled.ID, rules.IsFree, rules.AppliedFee)

	return &models.CancelBookingResponse{
		Booking:    *models.FromDomainBooking(cancelled),
		WasFree:    rules.IsFree,
		AppliedFee: rules.AppliedFee,
	}, nil
}

// CancellationRules возвращает действующие правила отмены бронирования
// на текущий момент, не меняя его состояния
func (s *Service) CancellationRules(ctx context.Context, bookingID int64, customerID int64) (*models.CancellationRulesResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := checkCustomerAccess(booking, customerID); err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		return &models.CancellationRulesResponse{BookingID: booking.ID, CanCancel: false}, nil
	}

	decision, err := s.evaluateCancellation(ctx, booking)
	if err != nil {
		return nil, err
	}

	return models.FromDomainDecision(booking.ID, decision), nil
}

// CheckIn отмечает прибытие клиента на слот
// Если таблица бронирований пропала (частичное восстановление БД),
// один раз повторно применяет миграции и повторяет попытку
func (s *Service) CheckIn(ctx context.Context, bookingID int64, staffID int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%d by staff=%d", bookingID, staffID)

	now := s.clock.Now()
	err := s.bookingRepo.CheckIn(ctx, bookingID, staffID, now)

	if errors.Is(err, bookingRepo.ErrTableMissing) {
		s.logger.Error("CheckIn: bookings table missing, reapplying migrations before retry")
		if healErr := s.schemaHealer.EnsureSchema(ctx); healErr != nil {
			s.logger.Error("CheckIn: schema recovery failed: %v", healErr)
			return nil, fmt.Errorf("%w: CheckIn - schema recovery failed: %v", ErrInternal, healErr)
		}
		err = s.bookingRepo.CheckIn(ctx, bookingID, staffID, now)
	}

	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		// Ноль обновленных строк: бронирования нет либо оно не подлежит чекину
		booking, getErr := s.bookingRepo.GetByID(ctx, bookingID)
		if getErr != nil {
			return nil, ErrBookingNotFound
		}
		if !booking.CanBeCheckedIn() {
			s.logger.Warn("CheckIn: booking id=%d not eligible, status=%s", bookingID, booking.Status)
			return nil, ErrCannotCheckIn
		}
		return nil, ErrCannotCheckIn
	}
	if err != nil {
		s.logger.Error("CheckIn: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: booking id=%d checked in at %s", bookingID, now.Format(time.RFC3339))
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// evaluateCancellation вычисляет решение политики отмены для бронирования
// Продукт читается напрямую: политика действует и для снятых с продажи
func (s *Service) evaluateCancellation(ctx context.Context, booking *domain.Booking) (domain.CancellationDecision, error) {
	product, err := s.productRepo.GetByID(ctx, booking.ProductID)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return domain.CancellationDecision{}, ErrProductNotFound
		}
		return domain.CancellationDecision{}, fmt.Errorf("%w: evaluateCancellation - get product: %v", ErrInternal, err)
	}

	cfg, err := product.Policy()
	if err != nil {
		s.logger.Error("evaluateCancellation: product id=%d has invalid policy: %v", product.ID, err)
		return domain.CancellationDecision{}, fmt.Errorf("%w: evaluateCancellation - invalid policy: %v", ErrInternal, err)
	}

	decision, err := policy.EvaluateCancellationForSlot(booking.BookingDate, booking.BookingTime, cfg, s.clock)
	if err != nil {
		return domain.CancellationDecision{}, fmt.Errorf("%w: evaluateCancellation - policy error: %v", ErrInternal, err)
	}

	return decision, nil
}

// checkCustomerAccess проверяет, что клиент владеет бронированием
// Бронирования пути заказа клиентским API недоступны: их жизненным циклом
// управляет модуль заказов через вебхук
func checkCustomerAccess(booking *domain.Booking, customerID int64) error {
	ref, ok := booking.CustomerRef()
	if !ok || ref.CustomerID != customerID {
		return ErrAccessDenied
	}
	return nil
}
