package order_cancelled

import (
	"errors"
	"net/http"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	cancelOrderBookings "github.com/fp-experiences/booking-service/internal/usecase/cancel_order_bookings"
)

const (
	msgInvalidBody = "некорректное тело запроса"
)

type Handler struct {
	useCase CancelOrderBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CancelOrderBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/orders/cancelled
// Повторная доставка безопасна: уже отмененные бронирования не трогаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req OrderCancelledRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelOrderBookings.Request{
		OrderID: req.OrderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelOrderBookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /webhooks/orders/cancelled - Failed for order %d: %v", req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/orders/cancelled - Order %d: cancelled=%d", result.OrderID, result.Cancelled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
