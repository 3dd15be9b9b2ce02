package get_day_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/internal/policy"
	availabilitySvc "github.com/fp-experiences/booking-service/internal/service/availability"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
)

// UseCase use case получения доступности продукта на дату
type UseCase struct {
	availability AvailabilityService
	clock        siteclock.Clock
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, clock siteclock.Clock, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		clock:        clock,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: product=%d, date=%s", req.ProductID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Продукт нужен заранее: его cutoff определяет бронируемость слотов
	product, err := uc.availability.GetActiveProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrProductNotFound) || errors.Is(err, availabilitySvc.ErrProductInactive) {
			uc.logger.Warn("GetDayAvailability: product id=%d not found", req.ProductID)
			return nil, ErrProductNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get product id=%d: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
	}

	// 3. Вычисляем занятость слотов дня
	day, err := uc.availability.ComputeDay(ctx, req.ProductID, req.Date)
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to compute day: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	// 4. Помечаем слоты, уже закрытые по cutoff
	resp := &Response{
		ProductID:         req.ProductID,
		Date:              day.Date,
		TotalCapacity:     day.TotalCapacity,
		AvailableCapacity: day.AvailableCapacity,
		Slots:             make([]Slot, 0, len(day.Slots)),
	}

	for _, slot := range day.Slots {
		bookable := false
		cutoff, err := policy.ValidateCutoff(req.Date, slot.StartTime, product.CutoffMinutes, uc.clock)
		if err == nil {
			bookable = cutoff.Valid
		}

		resp.Slots = append(resp.Slots, Slot{
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Capacity:       slot.Capacity,
			Available:      slot.Available,
			Bookable:       bookable,
			AdultPrice:     slot.AdultPrice,
			ChildPrice:     slot.ChildPrice,
			MeetingPointID: slot.MeetingPointID,
			Lang:           slot.Lang,
		})
	}

	uc.logger.Info("GetDayAvailability: product=%d, date=%s, slots=%d, available=%d",
		req.ProductID, req.Date.Format(domain.DateFormat), len(resp.Slots), resp.AvailableCapacity)

	return resp, nil
}
