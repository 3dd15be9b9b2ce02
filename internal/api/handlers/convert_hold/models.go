package convert_hold

import (
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	convertHold "github.com/fp-experiences/booking-service/internal/usecase/convert_hold"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// ConvertHoldRequest HTTP модель запроса на оформление холда в бронирование
type ConvertHoldRequest struct {
	SessionID      string  `json:"sessionId"`
	ProductID      int64   `json:"productId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	MeetingPointID *int64  `json:"meetingPointId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// customerID берется из контекста аутентификации, не из тела
func (r *ConvertHoldRequest) ToUseCaseRequest(customerID int64) (*convertHold.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	return &convertHold.Request{
		SessionID:      r.SessionID,
		CustomerID:     customerID,
		ProductID:      r.ProductID,
		Date:           date,
		StartTime:      startTime,
		Adults:         r.Adults,
		Children:       r.Children,
		MeetingPointID: r.MeetingPointID,
		Notes:          r.Notes,
	}, nil
}

// ConvertHoldResponse HTTP модель созданного бронирования
type ConvertHoldResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	ProductID     int64  `json:"productId"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Status        string `json:"status"`
	HoldConverted bool   `json:"holdConverted"`
	CreatedAt     string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *convertHold.Response) *ConvertHoldResponse {
	return &ConvertHoldResponse{
		ID:            resp.ID,
		BookingNumber: resp.BookingNumber,
		ProductID:     resp.ProductID,
		Date:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		Adults:        resp.Adults,
		Children:      resp.Children,
		Status:        resp.Status,
		HoldConverted: resp.HoldConverted,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
