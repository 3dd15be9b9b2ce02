package get_available_dates

import "fmt"

// maxRangeDays ограничивает ширину интервала: сводка считается по дням,
// и неограниченный интервал превратил бы запрос в полный скан календаря
const maxRangeDays = 92

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	days := int(req.To.Sub(req.From).Hours()/24) + 1
	if days > maxRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, maxRangeDays)
	}

	return nil
}
