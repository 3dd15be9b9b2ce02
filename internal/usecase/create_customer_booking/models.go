package create_customer_booking

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// Request модель запроса на прямое бронирование клиентом
type Request struct {
	CustomerID     int64            // ID клиента (мобильное приложение)
	ProductID      int64            // ID продукта (опыта)
	Date           time.Time        // Дата слота (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	Adults         int              // Число взрослых
	Children       int              // Число детей
	MeetingPointID *int64           // Точка сбора (опционально, иначе из расписания)
	Notes          *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64            // ID бронирования
	BookingNumber  string           // Публичный номер бронирования
	CustomerID     int64            // ID клиента
	ProductID      int64            // ID продукта
	BookingDate    time.Time        // Дата слота
	StartTime      types.TimeString // Время начала
	Adults         int              // Число взрослых
	Children       int              // Число детей
	Participants   int              // Всего мест
	MeetingPointID *int64           // Точка сбора
	Status         string           // Статус бронирования
	Notes          *string          // Заметки клиента

	CreatedAt time.Time // Время создания
}
