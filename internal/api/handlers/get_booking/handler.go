package get_booking

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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	customerID := middleware.UserID(r)

	result, err := h.service.GetByID(r.Context(), bookingID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsSvc.ErrAccessDenied):
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		default:
			h.logger.Error("GET /bookings/%d - Failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
