package create_order_bookings

import (
	"fmt"

	"github.com/fp-experiences/booking-service/internal/domain"
)

// validateRequest валидирует запрос вебхука целиком
// Поэлементные проблемы (нет мест, cutoff) не валидируются здесь:
// они разрешаются при обработке и попадают в поэлементный результат
func validateRequest(req *Request) error {
	if req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.Items))
	for i := range req.Items {
		if err := validateItem(&req.Items[i]); err != nil {
			return err
		}
		if _, dup := seen[req.Items[i].OrderItemID]; dup {
			return fmt.Errorf("%w: duplicate orderItemID %d in request", ErrInvalidInput, req.Items[i].OrderItemID)
		}
		seen[req.Items[i].OrderItemID] = struct{}{}
	}

	return nil
}

// validateItem валидирует одну позицию заказа
func validateItem(item *OrderItem) error {
	if item.OrderItemID <= 0 {
		return fmt.Errorf("%w: orderItemID must be positive", ErrInvalidInput)
	}

	if item.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive for item %d", ErrInvalidInput, item.OrderItemID)
	}

	if item.Date.IsZero() {
		return fmt.Errorf("%w: date is required for item %d", ErrInvalidInput, item.OrderItemID)
	}

	if err := item.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime for item %d: %v", ErrInvalidInput, item.OrderItemID, err)
	}

	if item.Adults < 0 || item.Children < 0 {
		return fmt.Errorf("%w: participant counts must not be negative for item %d", ErrInvalidInput, item.OrderItemID)
	}

	total := item.Adults + item.Children
	if total < domain.MinParticipants {
		return fmt.Errorf("%w: at least %d participant is required for item %d", ErrInvalidInput, domain.MinParticipants, item.OrderItemID)
	}
	if total > domain.MaxParticipantsPerBooking {
		return fmt.Errorf("%w: at most %d participants for item %d", ErrInvalidInput, domain.MaxParticipantsPerBooking, item.OrderItemID)
	}

	return nil
}
