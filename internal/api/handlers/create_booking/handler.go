package create_booking

import (
	"errors"
	"net/http"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/api/middleware"
	createCustomerBooking "github.com/fp-experiences/booking-service/internal/usecase/create_customer_booking"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgProductNotFound  = "продукт не найден"
	msgSlotNotFound     = "слот не найден в расписании"
	msgSlotNotAvailable = "недостаточно свободных мест в слоте"
	msgCutoffViolation  = "бронирование на этот слот уже закрыто"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.UserID(r)

	var req CreateBookingRequest
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
		case errors.Is(err, createCustomerBooking.ErrProductNotFound):
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, createCustomerBooking.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, createCustomerBooking.ErrSlotNotAvailable):
			handlers.RespondBadRequest(w, msgSlotNotAvailable)
		case errors.Is(err, createCustomerBooking.ErrCutoffViolation):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCutoffViolation)
		case errors.Is(err, createCustomerBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /bookings - Failed for customer %d: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Created booking %s for customer %d", result.BookingNumber, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
