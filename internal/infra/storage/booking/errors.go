package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateOrderItem возвращается при нарушении уникальности
	// (order_id, order_item_id) - повторная доставка вебхука заказа
	ErrDuplicateOrderItem = errors.New("booking.repository: booking for order item already exists")

	// ErrTableMissing возвращается, когда таблица bookings отсутствует
	// Сервис чекина использует это для одноразового самовосстановления схемы
	ErrTableMissing = errors.New("booking.repository: bookings table missing")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
