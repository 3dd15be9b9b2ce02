package create_order_bookings

import (
	"context"
	"errors"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/events"
	bookingRepo "github.com/fp-experiences/booking-service/internal/infra/storage/booking"
	bookingsSvc "github.com/fp-experiences/booking-service/internal/service/bookings"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
)

// UseCase use case создания бронирований по оплаченному заказу
//
// Вебхук заказов доставляется как минимум один раз, поэтому обработка
// идемпотентна по натуральному ключу (orderID, orderItemID): позиция,
// уже имеющая бронирование, повторно не бронируется и события не порождает.
// Каждая позиция коммитится в собственной транзакции - отказ одной позиции
// (нет мест, cutoff) не откатывает остальные.
// Холд сессии оформления потребляется в той же транзакции, что и вставка
// бронирования: иначе места считались бы занятыми дважды до истечения TTL
type UseCase struct {
	committer   BookingCommitter
	bookingRepo BookingRepository
	holdRepo    HoldRepository
	txManager   TransactionManager
	eventBus    EventPublisher
	clock       siteclock.Clock
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	committer BookingCommitter,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	txManager TransactionManager,
	eventBus EventPublisher,
	clock siteclock.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		committer:   committer,
		bookingRepo: bookingRepo,
		holdRepo:    holdRepo,
		txManager:   txManager,
		eventBus:    eventBus,
		clock:       clock,
		logger:      logger,
	}
}

// Execute выполняет use case бронирования позиций заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrderBookings: order=%d, items=%d", req.OrderID, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrderBookings: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		OrderID: req.OrderID,
		Items:   make([]ItemResult, 0, len(req.Items)),
	}

	// Бронирования, фактически созданные этим запросом: только они
	// порождают события подтверждения
	createdBookings := make([]*domain.Booking, 0, len(req.Items))

	// 2. Обрабатываем позиции по одной, в порядке запроса
	for i := range req.Items {
		item := &req.Items[i]
		result := uc.processItem(ctx, req, item)
		resp.Items = append(resp.Items, result.item)

		switch result.item.Status {
		case ItemStatusCreated:
			resp.Created++
			createdBookings = append(createdBookings, result.booking)
		case ItemStatusFailed:
			resp.Failed++
		}
	}

	// 3. Публикуем события только для фактически созданных бронирований
	for _, b := range createdBookings {
		uc.eventBus.PublishBookingConfirmed(ctx, events.BookingConfirmed{
			BookingID: b.ID,
			Booking:   b,
		})
	}

	uc.logger.Info("CreateOrderBookings: order=%d done, created=%d, failed=%d of %d",
		req.OrderID, resp.Created, resp.Failed, len(req.Items))

	return resp, nil
}

type itemOutcome struct {
	item    ItemResult
	booking *domain.Booking
}

// processItem бронирует одну позицию заказа в собственной
// сериализуемой транзакции
func (uc *UseCase) processItem(ctx context.Context, req *Request, item *OrderItem) itemOutcome {
	var created *domain.Booking
	var existing *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Идемпотентность: позиция уже может иметь бронирование
		found, err := uc.bookingRepo.GetByOrderItem(txCtx, req.OrderID, item.OrderItemID)
		if err == nil {
			existing = found
			return nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return err
		}

		// 2.2. Единый коммит: проверка вместимости и cutoff под блокировкой
		booking, err := uc.committer.Commit(txCtx, bookingsSvc.CommitParams{
			Origin:           domain.OrderOrigin{OrderID: req.OrderID, OrderItemID: item.OrderItemID},
			ProductID:        item.ProductID,
			Date:             item.Date,
			StartTime:        item.StartTime,
			Adults:           item.Adults,
			Children:         item.Children,
			MeetingPointID:   item.MeetingPointID,
			CustomerNotes:    item.Notes,
			ExcludeSessionID: req.SessionID,
		})
		if err != nil {
			return err
		}

		// 2.3. Потребляем холд сессии оформления: места позиции теперь
		// заняты бронированием, двойной учет недопустим
		if req.SessionID != nil {
			slotStart, err := item.StartTime.OnDate(item.Date, uc.clock.Location())
			if err != nil {
				return err
			}
			if err := uc.holdRepo.DeleteBySessionSlot(txCtx, item.ProductID, slotStart, *req.SessionID); err != nil {
				return err
			}
		}

		created = booking
		return nil
	})

	// Гонка двух доставок вебхука: оба прошли проверку существования,
	// второй insert уперся в частичный уникальный индекс. Перечитываем
	// и отвечаем как на повторную доставку
	if errors.Is(err, bookingsSvc.ErrDuplicateOrderItem) {
		found, getErr := uc.bookingRepo.GetByOrderItem(ctx, req.OrderID, item.OrderItemID)
		if getErr == nil {
			existing = found
			err = nil
		}
	}

	if err != nil {
		uc.logger.Warn("CreateOrderBookings: item=%d failed: %v", item.OrderItemID, err)
		return itemOutcome{item: ItemResult{
			OrderItemID: item.OrderItemID,
			Status:      ItemStatusFailed,
			Error:       err.Error(),
		}}
	}

	if existing != nil {
		uc.logger.Info("CreateOrderBookings: item=%d already booked as id=%d", item.OrderItemID, existing.ID)
		return itemOutcome{item: ItemResult{
			OrderItemID:   item.OrderItemID,
			BookingID:     existing.ID,
			BookingNumber: existing.BookingNumber,
			Status:        ItemStatusExists,
		}}
	}

	return itemOutcome{
		item: ItemResult{
			OrderItemID:   item.OrderItemID,
			BookingID:     created.ID,
			BookingNumber: created.BookingNumber,
			Status:        ItemStatusCreated,
		},
		booking: created,
	}
}
