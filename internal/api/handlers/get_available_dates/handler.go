package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/domain"
	getAvailableDates "github.com/fp-experiences/booking-service/internal/usecase/get_available_dates"
)

const (
	msgInvalidProductID = "некорректный ID продукта"
	msgInvalidRange     = "некорректный интервал дат, ожидается from и to в формате YYYY-MM-DD"
	msgRangeTooWide     = "интервал дат слишком широкий"
	msgProductNotFound  = "продукт не найден"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/available-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil || productID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		ProductID: productID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrProductNotFound):
			h.logger.Warn("GET /products/%d/available-dates - Product not found", productID)
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, getAvailableDates.ErrRangeTooWide):
			handlers.RespondBadRequest(w, msgRangeTooWide)
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /products/%d/available-dates - Failed: %v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
