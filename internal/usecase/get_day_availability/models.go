package get_day_availability

import (
	"time"

	"github.com/fp-experiences/booking-service/pkg/types"
)

// Request модель запроса доступности продукта на дату
type Request struct {
	ProductID int64     // ID продукта (опыта)
	Date      time.Time // Дата (без времени)
}

// Slot слот в ответе доступности
type Slot struct {
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время окончания
	Capacity       int              // Вместимость слота
	Available      int              // Свободные места (не меньше 0)
	Bookable       bool             // false, если слот закрыт по cutoff
	AdultPrice     float64          // Цена взрослого билета
	ChildPrice     float64          // Цена детского билета
	MeetingPointID *int64           // Точка сбора
	Lang           string           // Язык проведения
}

// Response модель ответа с доступностью на дату
// День без шаблонов расписания дает пустой список слотов
type Response struct {
	ProductID         int64     // ID продукта
	Date              time.Time // Дата
	TotalCapacity     int       // Суммарная вместимость дня
	AvailableCapacity int       // Суммарно свободно
	Slots             []Slot    // Слоты в порядке времени начала
}
