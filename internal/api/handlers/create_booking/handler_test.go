package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/api/middleware"
	createCustomerBooking "github.com/fp-experiences/booking-service/internal/usecase/create_customer_booking"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	lastReq *createCustomerBooking.Request
	resp    *createCustomerBooking.Response
	err     error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createCustomerBooking.Request) (*createCustomerBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, fakeLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func validBody() string {
	return `{"productId":1,"date":"2025-07-15","startTime":"10:00","adults":2,"children":1}`
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createCustomerBooking.Response{
		ID:            10,
		BookingNumber: "bn-10",
		CustomerID:    42,
		ProductID:     1,
		BookingDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Adults:        2,
		Children:      1,
		Participants:  3,
		Status:        "confirmed",
		CreatedAt:     time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// ID клиента берется из заголовка аутентификации, не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(42), uc.lastReq.CustomerID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bn-10", resp.BookingNumber)
	assert.Equal(t, "2025-07-15", resp.Date)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		// Мобильный контракт: нехватка мест - ошибка клиентских данных
		{name: "capacity exceeded", err: createCustomerBooking.ErrSlotNotAvailable, wantStatus: http.StatusBadRequest},
		{name: "cutoff violation", err: createCustomerBooking.ErrCutoffViolation, wantStatus: http.StatusUnprocessableEntity},
		{name: "product not found", err: createCustomerBooking.ErrProductNotFound, wantStatus: http.StatusNotFound},
		{name: "slot not found", err: createCustomerBooking.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid input", err: createCustomerBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createCustomerBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody())
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_BadPayload(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"productId":1,"date":"15.07.2025","startTime":"10:00","adults":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, &fakeUseCase{}, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
