package release_hold

import (
	"net/http"
	"time"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/types"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgHoldsDisabled = "временная блокировка мест отключена"
)

type Handler struct {
	service HoldsService
	clock   Clock
	logger  Logger
}

func NewHandler(service HoldsService, clock Clock, logger Logger) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/holds
// Снятие несуществующего холда не считается ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReleaseHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if req.SessionID == "" || req.ProductID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if !h.service.Enabled() {
		handlers.RespondError(w, http.StatusServiceUnavailable, msgHoldsDisabled)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	slotStart, err := startTime.OnDate(date, h.clock.Location())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.Release(r.Context(), req.ProductID, slotStart, req.SessionID); err != nil {
		h.logger.Error("DELETE /holds - Failed for session %s: %v", req.SessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ReleaseHoldResponse{Released: true})
}
