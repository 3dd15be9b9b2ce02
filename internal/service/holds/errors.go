package holds

import "errors"

var (
	// ErrHoldsDisabled возвращается, когда подсистема холдов выключена
	ErrHoldsDisabled = errors.New("holds are disabled")

	// ErrHoldNotFound возвращается, когда активный холд не найден
	ErrHoldNotFound = errors.New("hold not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holds.service: internal error")
)
