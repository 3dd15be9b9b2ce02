package get_day_availability

import (
	"github.com/fp-experiences/booking-service/internal/domain"
	getDayAvailability "github.com/fp-experiences/booking-service/internal/usecase/get_day_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Capacity       int     `json:"capacity"`
	Available      int     `json:"available"`
	Bookable       bool    `json:"bookable"`
	AdultPrice     float64 `json:"adultPrice"`
	ChildPrice     float64 `json:"childPrice"`
	MeetingPointID *int64  `json:"meetingPointId,omitempty"`
	Lang           string  `json:"lang,omitempty"`
}

// DayAvailabilityResponse HTTP модель доступности на дату
type DayAvailabilityResponse struct {
	ProductID         int64          `json:"productId"`
	Date              string         `json:"date"`
	TotalCapacity     int            `json:"totalCapacity"`
	AvailableCapacity int            `json:"availableCapacity"`
	Slots             []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *DayAvailabilityResponse {
	out := &DayAvailabilityResponse{
		ProductID:         resp.ProductID,
		Date:              resp.Date.Format(domain.DateFormat),
		TotalCapacity:     resp.TotalCapacity,
		AvailableCapacity: resp.AvailableCapacity,
		Slots:             make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			Capacity:       slot.Capacity,
			Available:      slot.Available,
			Bookable:       slot.Bookable,
			AdultPrice:     slot.AdultPrice,
			ChildPrice:     slot.ChildPrice,
			MeetingPointID: slot.MeetingPointID,
			Lang:           slot.Lang,
		})
	}

	return out
}
