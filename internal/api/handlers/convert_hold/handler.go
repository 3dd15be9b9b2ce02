package convert_hold

import (
	"errors"
	"net/http"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/api/middleware"
	convertHold "github.com/fp-experiences/booking-service/internal/usecase/convert_hold"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgProductNotFound  = "продукт не найден"
	msgSlotNotFound     = "слот не найден в расписании"
	msgSlotNotAvailable = "недостаточно свободных мест в слоте"
	msgCutoffViolation  = "бронирование на этот слот уже закрыто"
	msgHoldNotFound     = "холд истек или не найден, начните оформление заново"
)

type Handler struct {
	useCase ConvertHoldUseCase
	logger  Logger
}

func NewHandler(useCase ConvertHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds/convert
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.UserID(r)

	var req ConvertHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, convertHold.ErrHoldNotFound):
			handlers.RespondError(w, http.StatusConflict, msgHoldNotFound)
		case errors.Is(err, convertHold.ErrProductNotFound):
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, convertHold.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, convertHold.ErrSlotNotAvailable):
			handlers.RespondBadRequest(w, msgSlotNotAvailable)
		case errors.Is(err, convertHold.ErrCutoffViolation):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCutoffViolation)
		case errors.Is(err, convertHold.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /holds/convert - Failed for session %s: %v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds/convert - Created booking %s (converted=%t)", result.BookingNumber, result.HoldConverted)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
