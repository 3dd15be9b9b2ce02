package get_available_dates

import "time"

// Request модель запроса дат с доступностью в интервале
type Request struct {
	ProductID int64     // ID продукта (опыта)
	From      time.Time // Начало интервала (включительно)
	To        time.Time // Конец интервала (включительно)
}

// DaySummary посуточная сводка доступности
type DaySummary struct {
	Date              time.Time // Дата
	TotalCapacity     int       // Суммарная вместимость дня
	AvailableCapacity int       // Суммарно свободно
	HasAvailability   bool      // Есть ли хоть одно свободное место
}

// Response модель ответа со сводкой по датам
// Даты без единого шаблона расписания в список не попадают
type Response struct {
	ProductID int64        // ID продукта
	From      time.Time    // Начало интервала
	To        time.Time    // Конец интервала
	Days      []DaySummary // Даты со слотами, по возрастанию
}
