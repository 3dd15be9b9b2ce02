package create_booking

import (
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	createCustomerBooking "github.com/fp-experiences/booking-service/internal/usecase/create_customer_booking"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// CreateBookingRequest HTTP модель запроса на бронирование
type CreateBookingRequest struct {
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
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createCustomerBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	return &createCustomerBooking.Request{
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

// BookingResponse HTTP модель созданного бронирования
type BookingResponse struct {
	ID             int64   `json:"id"`
	BookingNumber  string  `json:"bookingNumber"`
	CustomerID     int64   `json:"customerId"`
	ProductID      int64   `json:"productId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	Participants   int     `json:"participants"`
	MeetingPointID *int64  `json:"meetingPointId,omitempty"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCustomerBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		BookingNumber:  resp.BookingNumber,
		CustomerID:     resp.CustomerID,
		ProductID:      resp.ProductID,
		Date:           resp.BookingDate.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		Adults:         resp.Adults,
		Children:       resp.Children,
		Participants:   resp.Participants,
		MeetingPointID: resp.MeetingPointID,
		Status:         resp.Status,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
