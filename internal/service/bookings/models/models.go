package models

import (
	"errors"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID             int64      `json:"id"`
	BookingNumber  string     `json:"bookingNumber"`
	OrderID        *int64     `json:"orderId,omitempty"`
	OrderItemID    *int64     `json:"orderItemId,omitempty"`
	CustomerID     *int64     `json:"customerId,omitempty"`
	ProductID      int64      `json:"productId"`
	BookingDate    string     `json:"bookingDate"`
	BookingTime    string     `json:"bookingTime"`
	Adults         int        `json:"adults"`
	Children       int        `json:"children"`
	Participants   int        `json:"participants"`
	MeetingPointID *int64     `json:"meetingPointId,omitempty"`
	Status         string     `json:"status"`
	CustomerNotes  *string    `json:"customerNotes,omitempty"`
	CheckedInAt    *time.Time `json:"checkedInAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// CancellationRulesResponse правила отмены бронирования на текущий момент
type CancellationRulesResponse struct {
	BookingID  int64     `json:"bookingId"`
	CanCancel  bool      `json:"canCancel"`
	FreeUntil  time.Time `json:"freeUntil"`
	IsFree     bool      `json:"isFree"`
	FeePercent float64   `json:"feePercent"`
	AppliedFee float64   `json:"appliedFee"`
}

// CancelBookingResponse результат отмены бронирования
type CancelBookingResponse struct {
	Booking    BookingResponse `json:"booking"`
	WasFree    bool            `json:"wasFree"`
	AppliedFee float64         `json:"appliedFeePercent"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID,
		BookingNumber:  b.BookingNumber,
		ProductID:      b.ProductID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		BookingTime:    b.BookingTime.String(),
		Adults:         b.Adults,
		Children:       b.Children,
		Participants:   b.Participants(),
		MeetingPointID: b.MeetingPointID,
		Status:         string(b.Status),
		CustomerNotes:  b.CustomerNotes,
		CheckedInAt:    b.CheckedInAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if ref, ok := b.OrderRef(); ok {
		resp.OrderID = &ref.OrderID
		resp.OrderItemID = &ref.OrderItemID
	}
	if ref, ok := b.CustomerRef(); ok {
		resp.CustomerID = &ref.CustomerID
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// FromDomainDecision конвертирует решение политики отмены
func FromDomainDecision(bookingID int64, d domain.CancellationDecision) *CancellationRulesResponse {
	applied := d.FeePercent
	if d.IsFree {
		applied = 0
	}
	return &CancellationRulesResponse{
		BookingID:  bookingID,
		CanCancel:  d.CanCancel,
		FreeUntil:  d.Deadline,
		IsFree:     d.IsFree,
		FeePercent: d.FeePercent,
		AppliedFee: applied,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
