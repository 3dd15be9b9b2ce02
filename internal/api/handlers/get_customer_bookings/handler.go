package get_customer_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/api/middleware"
	bookingsSvc "github.com/fp-experiences/booking-service/internal/service/bookings"
	"github.com/fp-experiences/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgForeignCustomer   = "можно смотреть только свои бронирования"
	msgInvalidStatus     = "некорректный статус бронирования"
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

// Handle GET /api/v1/customers/{customerId}/bookings?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil || customerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	if customerID != middleware.UserID(r) {
		handlers.RespondError(w, http.StatusForbidden, msgForeignCustomer)
		return
	}

	req := &models.GetCustomerBookingsRequest{CustomerID: customerID}
	if status := r.URL.Query().Get("status"); status != "" {
		if _, err := models.ToDomainBookingStatus(status); err != nil {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		req.Status = &status
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /customers/%d/bookings - Failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
