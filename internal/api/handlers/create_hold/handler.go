package create_hold

import (
	"errors"
	"net/http"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	createHold "github.com/fp-experiences/booking-service/internal/usecase/create_hold"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgHoldsDisabled    = "временная блокировка мест отключена"
	msgProductNotFound  = "продукт не найден"
	msgSlotNotFound     = "слот не найден в расписании"
	msgSlotNotAvailable = "недостаточно свободных мест в слоте"
	msgCutoffViolation  = "бронирование на этот слот уже закрыто"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateHoldRequest
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
		case errors.Is(err, createHold.ErrHoldsDisabled):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgHoldsDisabled)
		case errors.Is(err, createHold.ErrProductNotFound):
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, createHold.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, createHold.ErrSlotNotAvailable):
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)
		case errors.Is(err, createHold.ErrCutoffViolation):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCutoffViolation)
		case errors.Is(err, createHold.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /holds - Failed for session %s: %v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
