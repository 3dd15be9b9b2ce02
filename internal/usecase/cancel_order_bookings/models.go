package cancel_order_bookings

// Request модель запроса вебхука отмены (возврата) заказа
type Request struct {
	OrderID int64 // ID заказа
}

// Response модель ответа с отмененными бронированиями
type Response struct {
	OrderID    int64   // ID заказа
	BookingIDs []int64 // Отмененные бронирования в порядке позиций заказа
	Cancelled  int     // Число отмененных бронирований
}
