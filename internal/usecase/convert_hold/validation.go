package convert_hold

import (
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

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

	if req.Adults < 0 || req.Children < 0 {
		return fmt.Errorf("%w: participant counts must not be negative", ErrInvalidInput)
	}

	total := req.Adults + req.Children
	if total < domain.MinParticipants {
		return fmt.Errorf("%w: at least %d participant is required", ErrInvalidInput, domain.MinParticipants)
	}
	if total > domain.MaxParticipantsPerBooking {
		return fmt.Errorf("%w: at most %d participants per booking", ErrInvalidInput, domain.MaxParticipantsPerBooking)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxCustomerNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerNotesLength)
	}

	return nil
}
