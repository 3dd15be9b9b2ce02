package get_day_availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/domain"
	getDayAvailability "github.com/fp-experiences/booking-service/internal/usecase/get_day_availability"
)

const (
	msgInvalidProductID = "некорректный ID продукта"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProductNotFound  = "продукт не найден"
)

type Handler struct {
	useCase GetDayAvailabilityUseCase
	cache   Cache
	logger  Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, cache Cache, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		cache:   cache,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil || productID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Сначала пробуем кеш
	if h.cache != nil {
		if payload, ok := h.cache.GetDay(r.Context(), productID, date); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getDayAvailability.Request{
		ProductID: productID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailability.ErrProductNotFound):
			h.logger.Warn("GET /products/%d/availability - Product not found", productID)
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, getDayAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /products/%d/availability - Failed: %v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if h.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			h.cache.SetDay(r.Context(), productID, date, payload)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
