package get_available_dates

import (
	"github.com/fp-experiences/booking-service/internal/domain"
	getAvailableDates "github.com/fp-experiences/booking-service/internal/usecase/get_available_dates"
)

// DaySummaryResponse HTTP модель сводки по дате
type DaySummaryResponse struct {
	Date              string `json:"date"`
	TotalCapacity     int    `json:"totalCapacity"`
	AvailableCapacity int    `json:"availableCapacity"`
	HasAvailability   bool   `json:"hasAvailability"`
}

// AvailableDatesResponse HTTP модель ответа со сводкой по датам
type AvailableDatesResponse struct {
	ProductID int64                `json:"productId"`
	From      string               `json:"from"`
	To        string               `json:"to"`
	Days      []DaySummaryResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	out := &AvailableDatesResponse{
		ProductID: resp.ProductID,
		From:      resp.From.Format(domain.DateFormat),
		To:        resp.To.Format(domain.DateFormat),
		Days:      make([]DaySummaryResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		out.Days = append(out.Days, DaySummaryResponse{
			Date:              day.Date.Format(domain.DateFormat),
			TotalCapacity:     day.TotalCapacity,
			AvailableCapacity: day.AvailableCapacity,
			HasAvailability:   day.HasAvailability,
		})
	}

	return out
}
