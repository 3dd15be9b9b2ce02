package order_paid

import (
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	createOrderBookings "github.com/fp-experiences/booking-service/internal/usecase/create_order_bookings"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// OrderItemRequest позиция заказа в теле вебхука
type OrderItemRequest struct {
	OrderItemID    int64   `json:"orderItemId"`
	ProductID      int64   `json:"productId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	MeetingPointID *int64  `json:"meetingPointId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// OrderPaidRequest HTTP модель вебхука оплаченного заказа
type OrderPaidRequest struct {
	OrderID   int64              `json:"orderId"`
	SessionID *string            `json:"sessionId,omitempty"`
	Items     []OrderItemRequest `json:"items"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OrderPaidRequest) ToUseCaseRequest() (*createOrderBookings.Request, error) {
	items := make([]createOrderBookings.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		date, err := time.Parse(domain.DateFormat, item.Date)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid date %q: %w", item.OrderItemID, item.Date, err)
		}

		startTime, err := types.NewTimeStringFromString(item.StartTime)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid startTime: %w", item.OrderItemID, err)
		}

		items = append(items, createOrderBookings.OrderItem{
			OrderItemID:    item.OrderItemID,
			ProductID:      item.ProductID,
			Date:           date,
			StartTime:      startTime,
			Adults:         item.Adults,
			Children:       item.Children,
			MeetingPointID: item.MeetingPointID,
			Notes:          item.Notes,
		})
	}

	return &createOrderBookings.Request{
		OrderID:   r.OrderID,
		SessionID: r.SessionID,
		Items:     items,
	}, nil
}

// ItemResultResponse результат обработки позиции заказа
type ItemResultResponse struct {
	OrderItemID   int64  `json:"orderItemId"`
	BookingID     int64  `json:"bookingId,omitempty"`
	BookingNumber string `json:"bookingNumber,omitempty"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

// OrderPaidResponse HTTP модель ответа вебхука
type OrderPaidResponse struct {
	OrderID int64                `json:"orderId"`
	Items   []ItemResultResponse `json:"items"`
	Created int                  `json:"created"`
	Failed  int                  `json:"failed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrderBookings.Response) *OrderPaidResponse {
	out := &OrderPaidResponse{
		OrderID: resp.OrderID,
		Items:   make([]ItemResultResponse, 0, len(resp.Items)),
		Created: resp.Created,
		Failed:  resp.Failed,
	}

	for _, item := range resp.Items {
		out.Items = append(out.Items, ItemResultResponse{
			OrderItemID:   item.OrderItemID,
			BookingID:     item.BookingID,
			BookingNumber: item.BookingNumber,
			Status:        item.Status,
			Error:         item.Error,
		})
	}

	return out
}
