package order_paid

import (
	"errors"
	"net/http"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	createOrderBookings "github.com/fp-experiences/booking-service/internal/usecase/create_order_bookings"
)

const (
	msgInvalidBody = "некорректное тело запроса"
)

type Handler struct {
	useCase CreateOrderBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/orders/paid
// Повторная доставка вебхука безопасна: уже забронированные позиции
// возвращаются со статусом exists
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req OrderPaidRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createOrderBookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /webhooks/orders/paid - Failed for order %d: %v", req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/orders/paid - Order %d: created=%d failed=%d", result.OrderID, result.Created, result.Failed)

	// Частичный отказ возвращаем как 207, чтобы шлюз заказов увидел различие
	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}

	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
