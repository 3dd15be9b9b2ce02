package availability

import "errors"

var (
	// ErrProductNotFound возвращается, когда продукт не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrProductInactive возвращается, когда продукт снят с продажи
	ErrProductInactive = errors.New("product is not active")

	// ErrSlotNotFound возвращается, когда слот не порождается ни одним шаблоном
	ErrSlotNotFound = errors.New("no schedule slot at requested time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
