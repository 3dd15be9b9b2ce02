package create_customer_booking

import "errors"

var (
	// ErrProductNotFound возвращается, когда продукт не найден или неактивен
	ErrProductNotFound = errors.New("create_customer_booking: product not found")

	// ErrSlotNotFound возвращается, когда слот не порождается расписанием
	ErrSlotNotFound = errors.New("create_customer_booking: no schedule slot at requested time")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("create_customer_booking: not enough seats available")

	// ErrCutoffViolation возвращается, когда бронирование слота уже закрыто
	ErrCutoffViolation = errors.New("create_customer_booking: booking cutoff violation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_customer_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_customer_booking: internal error")
)
