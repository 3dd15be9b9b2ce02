package create_hold

import "errors"

var (
	// ErrHoldsDisabled возвращается, когда подсистема холдов выключена
	ErrHoldsDisabled = errors.New("create_hold: holds are disabled")

	// ErrProductNotFound возвращается, когда продукт не найден или неактивен
	ErrProductNotFound = errors.New("create_hold: product not found")

	// ErrSlotNotFound возвращается, когда слот не порождается расписанием
	ErrSlotNotFound = errors.New("create_hold: no schedule slot at requested time")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("create_hold: not enough seats available")

	// ErrCutoffViolation возвращается, когда слот уже закрыт для бронирования
	ErrCutoffViolation = errors.New("create_hold: booking cutoff violation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
