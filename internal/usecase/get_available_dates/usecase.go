package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
	availabilitySvc "github.com/fp-experiences/booking-service/internal/service/availability"
)

// UseCase use case получения дат с доступностью в интервале
// Обслуживает календарь выбора даты в витрине
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case получения сводки по датам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: product=%d, from=%s, to=%s",
		req.ProductID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Считаем посуточную сводку
	days, err := uc.availability.ComputeRange(ctx, req.ProductID, req.From, req.To)
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrProductNotFound) || errors.Is(err, availabilitySvc.ErrProductInactive) {
			uc.logger.Warn("GetAvailableDates: product id=%d not found", req.ProductID)
			return nil, ErrProductNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to compute range: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	resp := &Response{
		ProductID: req.ProductID,
		From:      req.From,
		To:        req.To,
		Days:      make([]DaySummary, 0, len(days)),
	}

	for _, day := range days {
		resp.Days = append(resp.Days, DaySummary{
			Date:              day.Date,
			TotalCapacity:     day.TotalCapacity,
			AvailableCapacity: day.AvailableCapacity,
			HasAvailability:   day.HasAvailability(),
		})
	}

	uc.logger.Info("GetAvailableDates: product=%d, days with slots=%d", req.ProductID, len(resp.Days))
	return resp, nil
}
