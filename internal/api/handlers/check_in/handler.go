package check_in

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/api/middleware"
	bookingsSvc "github.com/fp-experiences/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgCannotCheckIn    = "отметить визит можно только по подтвержденному бронированию"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	staffID := middleware.UserID(r)

	result, err := h.service.CheckIn(r.Context(), bookingID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsSvc.ErrCannotCheckIn):
			handlers.RespondError(w, http.StatusConflict, msgCannotCheckIn)
		default:
			h.logger.Error("POST /bookings/%d/check-in - Failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/check-in - Checked in by staff %d", bookingID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
