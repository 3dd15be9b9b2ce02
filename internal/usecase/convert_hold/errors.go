package convert_hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда активный холд сессии на слот
	// истек или отсутствует: оформление нужно начать заново
	ErrHoldNotFound = errors.New("convert_hold: hold expired or not found")

	// ErrProductNotFound возвращается, когда продукт не найден или неактивен
	ErrProductNotFound = errors.New("convert_hold: product not found")

	// ErrSlotNotFound возвращается, когда слот не порождается расписанием
	ErrSlotNotFound = errors.New("convert_hold: no schedule slot at requested time")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("convert_hold: not enough seats available")

	// ErrCutoffViolation возвращается, когда слот уже закрыт для бронирования
	ErrCutoffViolation = errors.New("convert_hold: booking cutoff violation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("convert_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("convert_hold: internal error")
)
