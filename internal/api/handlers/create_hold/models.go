package create_hold

import (
	"fmt"
	"time"

	"github.com/fp-experiences/booking-service/internal/domain"
	createHold "github.com/fp-experiences/booking-service/internal/usecase/create_hold"
	"github.com/fp-experiences/booking-service/pkg/types"
)

// CreateHoldRequest HTTP модель запроса на холд мест
type CreateHoldRequest struct {
	SessionID string `json:"sessionId"`
	ProductID int64  `json:"productId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest() (*createHold.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	return &createHold.Request{
		SessionID: r.SessionID,
		ProductID: r.ProductID,
		Date:      date,
		StartTime: startTime,
		Adults:    r.Adults,
		Children:  r.Children,
	}, nil
}

// HoldResponse HTTP модель созданного холда
type HoldResponse struct {
	HoldID    int64  `json:"holdId"`
	ProductID int64  `json:"productId"`
	SlotStart string `json:"slotStart"`
	Seats     int    `json:"seats"`
	ExpiresAt string `json:"expiresAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		HoldID:    resp.HoldID,
		ProductID: resp.ProductID,
		SlotStart: resp.SlotStart.Format(time.RFC3339),
		Seats:     resp.Seats,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
	}
}
