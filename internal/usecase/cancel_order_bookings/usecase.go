package cancel_order_bookings

import (
	"context"
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
)

// UseCase use case отмены бронирований по возврату заказа
//
// Отмена идемпотентна: уже отмененные бронирования заказа повторно
// не трогаются и событий не порождают. Политика отмены (дедлайны, сборы)
// здесь не применяется - возврат заказа решен модулем заказов,
// этот сервис лишь освобождает места
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	eventBus    EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирований заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelOrderBookings: order=%d", req.OrderID)

	// 1. Валидация входных данных
	if req.OrderID <= 0 {
		uc.logger.Warn("CancelOrderBookings: orderID must be positive")
		return nil, fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	var cancelled []*domain.Booking

	// 2. Отменяем все активные бронирования заказа в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.GetByOrder(txCtx, req.OrderID, true)
		if err != nil {
			uc.logger.Error("CancelOrderBookings: failed to get bookings for order=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, b := range bookings {
			if err := uc.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusCancelled); err != nil {
				uc.logger.Error("CancelOrderBookings: failed to cancel booking id=%d: %v", b.ID, err)
				return fmt.Errorf("%w: failed to cancel booking %d: %v", ErrInternal, b.ID, err)
			}
			b.Status = domain.StatusCancelled
			cancelled = append(cancelled, b)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Публикуем событие на каждое отмененное бронирование отдельно,
	// в порядке загрузки: инвалидация кеша ключуется парой (product, date),
	// а заказ может охватывать несколько продуктов и дат
	resp := &Response{OrderID: req.OrderID, BookingIDs: make([]int64, 0, len(cancelled))}
	for _, b := range cancelled {
		uc.eventBus.PublishBookingCancelled(ctx, events.BookingCancelled{
			BookingID: b.ID,
			ProductID: b.ProductID,
			Date:      b.BookingDate,
		})
		resp.BookingIDs = append(resp.BookingIDs, b.ID)
	}
	resp.Cancelled = len(cancelled)

	uc.logger.Info("CancelOrderBookings: order=%d cancelled %d bookings", req.OrderID, resp.Cancelled)
	return resp, nil
}
