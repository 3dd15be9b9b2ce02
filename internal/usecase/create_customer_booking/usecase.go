package create_customer_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	bookingsSvc "github.com/fp-experiences/booking-service/internal/service/bookings"
)

// UseCase use case прямого бронирования клиентом
type UseCase struct {
	committer BookingCommitter
	txManager TransactionManager
	eventBus  EventPublisher
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	committer BookingCommitter,
	txManager TransactionManager,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		committer: committer,
		txManager: txManager,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Execute выполняет use case прямого бронирования
// Проверка вместимости и вставка идут в сериализуемой транзакции:
// два конкурентных запроса не могут продать одно место дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCustomerBooking: customer=%d, product=%d, date=%s, time=%s, adults=%d, children=%d",
		req.CustomerID, req.ProductID, req.Date.Format(domain.DateFormat), req.StartTime, req.Adults, req.Children)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCustomerBooking: validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 2. Коммит бронирования в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.committer.Commit(txCtx, bookingsSvc.CommitParams{
			Origin:         domain.DirectOrigin{CustomerID: req.CustomerID},
			ProductID:      req.ProductID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			Adults:         req.Adults,
			Children:       req.Children,
			MeetingPointID: req.MeetingPointID,
			CustomerNotes:  req.Notes,
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

	uc.logger.Info("CreateCustomerBooking: created booking id=%d number=%s", result.ID, result.BookingNumber)

	return &Response{
		ID:             result.ID,
		BookingNumber:  result.BookingNumber,
		CustomerID:     req.CustomerID,
		ProductID:      result.ProductID,
		BookingDate:    result.BookingDate,
		StartTime:      result.BookingTime,
		Adults:         result.Adults,
		Children:       result.Children,
		Participants:   result.Participants(),
		MeetingPointID: result.MeetingPointID,
		Status:         string(result.Status),
		Notes:          result.CustomerNotes,
		CreatedAt:      result.CreatedAt,
	}, nil
}

// mapCommitError транслирует ошибки сервиса бронирований в ошибки usecase
func mapCommitError(err error) error {
	switch {
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
