package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrProductNotFound возвращается, когда продукт не найден или неактивен
	ErrProductNotFound = errors.New("product not found")

	// ErrSlotNotFound возвращается, когда слот не порождается расписанием
	ErrSlotNotFound = errors.New("no schedule slot at requested time")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("not enough seats available")

	// ErrCutoffViolation возвращается, когда слот уже закрыт для бронирования
	ErrCutoffViolation = errors.New("booking cutoff violation")

	// ErrDuplicateOrderItem возвращается, когда бронирование позиции заказа
	// уже существует
	ErrDuplicateOrderItem = errors.New("booking for order item already exists")

	// ErrAccessDenied возвращается, когда у клиента нет прав на бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotCheckIn возвращается, когда чекин невозможен
	ErrCannotCheckIn = errors.New("booking cannot be checked in")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
