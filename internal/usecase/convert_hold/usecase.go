package convert_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	holdRepo "github.com/fp-experiences/booking-service/internal/infra/storage/hold"
	bookingsSvc "github.com/fp-experiences/booking-service/internal/service/bookings"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
)

// UseCase use case конвертации холда в бронирование при завершении оформления
//
// Холд сессии блокируется FOR UPDATE и удаляется в той же транзакции,
// что и вставка бронирования: конкурентный свип не может удалить холд
// посреди конвертации, а места холда не считаются занятостью дважды.
// Истекший или отсутствующий холд отклоняет конвертацию: места могли
// уйти другой сессии, клиент должен начать оформление заново.
// Обычной проверкой вместимости бронирование проходит только при
// выключенной подсистеме холдов
type UseCase struct {
	committer BookingCommitter
	holdRepo  HoldRepository
	holdsSvc  HoldsService
	txManager TransactionManager
	eventBus  EventPublisher
	clock     siteclock.Clock
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	committer BookingCommitter,
	holdRepo HoldRepository,
	holdsSvc HoldsService,
	txManager TransactionManager,
	eventBus EventPublisher,
	clock siteclock.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		committer: committer,
		holdRepo:  holdRepo,
		holdsSvc:  holdsSvc,
		txManager: txManager,
		eventBus:  eventBus,
		clock:     clock,
		logger:    logger,
	}
}

// Execute выполняет use case конвертации холда
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConvertHold: session=%s, customer=%d, product=%d, date=%s, time=%s",
		req.SessionID, req.CustomerID, req.ProductID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConvertHold: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	var converted bool

	// 2. Конвертация в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slotStart, err := req.StartTime.OnDate(req.Date, uc.clock.Location())
		if err != nil {
			return fmt.Errorf("%w: slot instant: %v", ErrInternal, err)
		}

		// 2.1. Забираем активный холд сессии под блокировкой и удаляем его
		if uc.holdsSvc.Enabled() {
			hold, err := uc.holdRepo.GetBySessionSlot(txCtx, req.ProductID, slotStart, req.SessionID, uc.clock.Now(), true)
			switch {
			case err == nil:
				if err := uc.holdRepo.DeleteByID(txCtx, hold.ID); err != nil {
					return fmt.Errorf("%w: failed to consume hold: %v", ErrInternal, err)
				}
				converted = true
			case errors.Is(err, holdRepo.ErrHoldNotFound):
				// Холд истек до завершения оформления или его не было
				uc.logger.Warn("ConvertHold: no active hold for session=%s", req.SessionID)
				return ErrHoldNotFound
			default:
				return fmt.Errorf("%w: failed to get hold: %v", ErrInternal, err)
			}
		}

		// 2.2. Единый коммит: проверка вместимости и cutoff под блокировкой
		// Холды собственной сессии исключаются из занятости
		created, err := uc.committer.Commit(txCtx, bookingsSvc.CommitParams{
			Origin:           domain.DirectOrigin{CustomerID: req.CustomerID},
			ProductID:        req.ProductID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			Adults:           req.Adults,
			Children:         req.Children,
			MeetingPointID:   req.MeetingPointID,
			CustomerNotes:    req.Notes,
			ExcludeSessionID: &req.SessionID,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, mapCommitError(err)
	}

	// 3. Публикуем событие подтверждения после коммита
	uc.eventBus.PublishBookingConfirmed(ctx, events.BookingConfirmed{
		BookingID: result.ID,
		Booking:   result,
	})

	uc.logger.Info("ConvertHold: created booking id=%d number=%s, hold converted=%v",
		result.ID, result.BookingNumber, converted)

	return &Response{
		ID:            result.ID,
		BookingNumber: result.BookingNumber,
		ProductID:     result.ProductID,
		BookingDate:   result.BookingDate,
		StartTime:     result.BookingTime,
		Adults:        result.Adults,
		Children:      result.Children,
		Status:        string(result.Status),
		HoldConverted: converted,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// mapCommitError транслирует ошибки сервиса бронирований в ошибки usecase
func mapCommitError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrHoldNotFound), errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, bookingsSvc.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, bookingsSvc.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, bookingsSvc.ErrSlotNotAvailable):
		return ErrSlotNotAvailable
	case errors.Is(err, bookingsSvc.ErrCutoffViolation):
		return fmt.Errorf("%w: %v", ErrCutoffViolation, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
