package create_customer_booking

import (
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validateParticipants(req.Adults, req.Children); err != nil {
		return err
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxCustomerNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerNotesLength)
	}

	return nil
}

// validateParticipants проверяет состав участников
func validateParticipants(adults, children int) error {
	if adults < 0 || children < 0 {
		return fmt.Errorf("%w: participant counts must not be negative", ErrInvalidInput)
	}

	total := adults + children
	if total < domain.MinParticipants {
		return fmt.Errorf("%w: at least %d participant is required", ErrInvalidInput, domain.MinParticipants)
	}
	if total > domain.MaxParticipantsPerBooking {
		return fmt.Errorf("%w: at most %d participants per booking", ErrInvalidInput, domain.MaxParticipantsPerBooking)
	}

	return nil
}
