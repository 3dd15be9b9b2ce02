package create_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/policy"
	availabilitySvc "github.com/fp-experiences/booking-service/internal/service/availability"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
)

// UseCase use case временного холда мест на время оформления заказа
//
// Повторный холд той же сессии на тот же слот заменяет предыдущий:
// клиент, изменивший состав участников в корзине, не накапливает
// резервы. Холды чужих сессий считаются занятостью, собственный - нет
type UseCase struct {
	availability AvailabilityService
	holdRepo     HoldRepository
	holdsSvc     HoldsService
	txManager    TransactionManager
	clock        siteclock.Clock
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityService,
	holdRepo HoldRepository,
	holdsSvc HoldsService,
	txManager TransactionManager,
	clock siteclock.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		holdRepo:     holdRepo,
		holdsSvc:     holdsSvc,
		txManager:    txManager,
		clock:        clock,
		logger:       logger,
	}
}

// Execute выполняет use case создания холда
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: session=%s, product=%d, date=%s, time=%s, seats=%d",
		req.SessionID, req.ProductID, req.Date.Format(domain.DateFormat), req.StartTime, req.Adults+req.Children)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Подсистема холдов должна быть включена
	if !uc.holdsSvc.Enabled() {
		return nil, ErrHoldsDisabled
	}

	var result *domain.Hold

	// 3. Проверка вместимости и вставка холда в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Продукт должен существовать и продаваться
		product, err := uc.availability.GetActiveProduct(txCtx, req.ProductID)
		if err != nil {
			if errors.Is(err, availabilitySvc.ErrProductNotFound) || errors.Is(err, availabilitySvc.ErrProductInactive) {
				return ErrProductNotFound
			}
			return fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
		}

		// 3.2. Слот должен порождаться расписанием
		tpl, err := uc.availability.ResolveSlot(txCtx, req.ProductID, req.Date, req.StartTime)
		if err != nil {
			if errors.Is(err, availabilitySvc.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
		}

		// 3.3. Холд слота, закрытого по cutoff, бессмыслен: бронирование
		// из него все равно не состоится
		cutoff, err := policy.ValidateCutoff(req.Date, req.StartTime, product.CutoffMinutes, uc.clock)
		if err != nil {
			return fmt.Errorf("%w: cutoff check: %v", ErrInternal, err)
		}
		if !cutoff.Valid {
			return fmt.Errorf("%w: %s", ErrCutoffViolation, cutoff.Message)
		}

		// 3.4. Считаем занятость под блокировкой, исключая собственный
		// прежний холд сессии
		booked, err := uc.availability.CommittedSeats(txCtx, req.ProductID, req.Date, req.StartTime, true)
		if err != nil {
			return fmt.Errorf("%w: failed to count booked seats: %v", ErrInternal, err)
		}

		slotStart, err := uc.availability.SlotInstant(req.Date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: slot instant: %v", ErrInternal, err)
		}

		held, err := uc.availability.HeldSeats(txCtx, req.ProductID, slotStart, &req.SessionID)
		if err != nil {
			return fmt.Errorf("%w: failed to count held seats: %v", ErrInternal, err)
		}

		requested := req.Adults + req.Children
		if booked+held+requested > tpl.Capacity {
			uc.logger.Warn("CreateHold: slot over capacity: booked=%d held=%d requested=%d capacity=%d",
				booked, held, requested, tpl.Capacity)
			return ErrSlotNotAvailable
		}

		// 3.5. Заменяем прежний холд сессии на этот слот
		if err := uc.holdRepo.DeleteBySessionSlot(txCtx, req.ProductID, slotStart, req.SessionID); err != nil {
			return fmt.Errorf("%w: failed to replace previous hold: %v", ErrInternal, err)
		}

		// 3.6. Создаем холд с TTL
		now := uc.clock.Now()
		created, err := uc.holdRepo.Create(txCtx, &domain.Hold{
			ProductID: req.ProductID,
			SlotStart: slotStart,
			SessionID: req.SessionID,
			Adults:    req.Adults,
			Children:  req.Children,
			ExpiresAt: now.Add(uc.holdsSvc.TTL()),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateHold: created hold id=%d, expires at %s", result.ID, result.ExpiresAt.Format("15:04:05"))

	return &Response{
		HoldID:    result.ID,
		ProductID: result.ProductID,
		SlotStart: result.SlotStart,
		Seats:     result.Seats(),
		ExpiresAt: result.ExpiresAt,
	}, nil
}
