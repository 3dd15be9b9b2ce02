package convert_hold

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// Request модель запроса на конвертацию холда в бронирование
type Request struct {
	SessionID      string           // Сессия оформления заказа
	CustomerID     int64            // ID клиента
	ProductID      int64            // ID продукта (опыта)
	Date           time.Time        // Дата слота
	StartTime      types.TimeString // Время начала слота
	Adults         int              // Число взрослых
	Children       int              // Число детей
	MeetingPointID *int64           // Точка сбора (опционально)
	Notes          *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID бронирования
	BookingNumber string           // Публичный номер бронирования
	ProductID     int64            // ID продукта
	BookingDate   time.Time        // Дата слота
	StartTime     types.TimeString // Время начала
	Adults        int              // Число взрослых
	Children      int              // Число детей
	Status        string           // Статус бронирования
	HoldConverted bool             // true, если активный холд был конвертирован

	CreatedAt time.Time // Время создания
}
