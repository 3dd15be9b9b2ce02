package cancel_booking

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
	msgAccessDenied     = "доступ к бронированию запрещен"
	msgCannotCancel     = "бронирование нельзя отменить в текущем статусе"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	customerID := middleware.UserID(r)

	result, err := h.service.Cancel(r.Context(), bookingID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsSvc.ErrAccessDenied):
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		case errors.Is(err, bookingsSvc.ErrCannotCancel):
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)
		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Cancelled by customer %d (free=%t)", bookingID, customerID, result.WasFree)
	handlers.RespondJSON(w, http.StatusOK, result)
}
