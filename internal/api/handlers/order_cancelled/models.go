package order_cancelled

import (
	cancelOrderBookings "github.com/fp-experiences/booking-service/internal/usecase/cancel_order_bookings"
)

// OrderCancelledRequest HTTP модель вебхука отмены заказа
type OrderCancelledRequest struct {
	OrderID int64 `json:"orderId"`
}

// OrderCancelledResponse HTTP модель ответа вебхука
type OrderCancelledResponse struct {
	OrderID    int64   `json:"orderId"`
	BookingIDs []int64 `json:"bookingIds"`
	Cancelled  int     `json:"cancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelOrderBookings.Response) *OrderCancelledResponse {
	return &OrderCancelledResponse{
		OrderID:    resp.OrderID,
		BookingIDs: resp.BookingIDs,
		Cancelled:  resp.Cancelled,
	}
}
