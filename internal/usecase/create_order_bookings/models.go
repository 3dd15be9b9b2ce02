package create_order_bookings

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// Статусы обработки позиции заказа
const (
	ItemStatusCreated = "created" // бронирование создано этим запросом
	ItemStatusExists  = "exists"  // бронирование уже было (повторная доставка)
	ItemStatusFailed  = "failed"  // позиция не забронирована
)

// OrderItem позиция заказа, подлежащая бронированию
type OrderItem struct {
	OrderItemID    int64            // ID позиции заказа
	ProductID      int64            // ID продукта (опыта)
	Date           time.Time        // Дата слота
	StartTime      types.TimeString // Время начала слота
	Adults         int              // Число взрослых
	Children       int              // Число детей
	MeetingPointID *int64           // Точка сбора (опционально)
	Notes          *string          // Заметки клиента (опционально)
}

// Request модель запроса вебхука оплаченного заказа
type Request struct {
	OrderID   int64       // ID заказа
	SessionID *string     // Сессия оформления: её холды не считаются занятостью
	Items     []OrderItem // Позиции заказа
}

// ItemResult результат обработки одной позиции заказа
type ItemResult struct {
	OrderItemID   int64  // ID позиции заказа
	BookingID     int64  // ID бронирования (для created и exists)
	BookingNumber string // Номер бронирования (для created и exists)
	Status        string // created | exists | failed
	Error         string // Причина отказа (для failed)
}

// Response модель ответа с поэлементными результатами
// Частичный отказ допустим: успешные позиции остаются забронированными
type Response struct {
	OrderID int64        // ID заказа
	Items   []ItemResult // Результаты в порядке позиций запроса
	Created int          // Число фактически созданных бронирований
	Failed  int          // Число отказов
}
