package get_available_dates

import "errors"

var (
	// ErrProductNotFound возвращается, когда продукт не найден или неактивен
	ErrProductNotFound = errors.New("get_available_dates: product not found")

	// ErrRangeTooWide возвращается, когда запрошенный интервал превышает лимит
	ErrRangeTooWide = errors.New("get_available_dates: date range is too wide")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
