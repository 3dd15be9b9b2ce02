package create_hold

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// Request модель запроса на холд мест
type Request struct {
	SessionID string           // Сессия оформления заказа
	ProductID int64            // ID продукта (опыта)
	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала слота
	Adults    int              // Число взрослых
	Children  int              // Число детей
}

// Response модель ответа с созданным холдом
type Response struct {
	HoldID    int64     // ID холда
	ProductID int64     // ID продукта
	SlotStart time.Time // Момент начала слота в таймзоне площадки
	Seats     int       // Захолдированные места
	ExpiresAt time.Time // Момент истечения холда
}
