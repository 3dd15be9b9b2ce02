package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/types"
)

func TestValidateCutoff(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Сейчас 10:00 по Нью-Йорку
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 15, 10, 0, 0, 0, ny)}
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		slotTime      types.TimeString
		cutoffMinutes int
		wantValid     bool
	}{
		{name: "slot far in the future", slotTime: "18:00", cutoffMinutes: 120, wantValid: true},
		{name: "slot exactly on the cutoff boundary", slotTime: "12:00", cutoffMinutes: 120, wantValid: true},
		{name: "slot inside cutoff window", slotTime: "11:00", cutoffMinutes: 120, wantValid: false},
		{name: "slot 130 minutes away passes 120 cutoff", slotTime: "12:10", cutoffMinutes: 120, wantValid: true},
		{name: "slot already started", slotTime: "09:00", cutoffMinutes: 120, wantValid: false},
		{name: "slot starting right now", slotTime: "10:00", cutoffMinutes: 0, wantValid: false},
		{name: "zero cutoff allows near slot", slotTime: "10:01", cutoffMinutes: 0, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateCutoff(date, tt.slotTime, tt.cutoffMinutes, clock)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}

func TestValidateCutoff_NegativeCutoff(t *testing.T) {
	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)}
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	_, err := ValidateCutoff(date, "12:00", -1, clock)
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
}

func TestValidateCutoff_UsesSiteTimezone(t *testing.T) {
	// 23:00 UTC 14 июля = 11:00 15 июля в Окленде: слот "12:00" 15 июля
	// в часе от текущего момента площадки, хотя UTC-дата еще вчерашняя
	auckland, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)

	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 15, 11, 0, 0, 0, auckland)}
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	result, err := ValidateCutoff(date, "12:00", 120, clock)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = ValidateCutoff(date, "13:00", 120, clock)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
