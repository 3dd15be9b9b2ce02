package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
)

func TestEvaluateCancellation(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	cfg := domain.PolicyConfig{
		CutoffMinutes:          120,
		FreeCancelUntilMinutes: 1440,
		CancellationFeePercent: 20,
	}
	start := time.Date(2025, 7, 16, 10, 0, 0, 0, rome)

	t.Run("free before the deadline", func(t *testing.T) {
		clock := &siteclock.Fixed{Time: time.Date(2025, 7, 14, 10, 0, 0, 0, rome)}

		decision, err := EvaluateCancellation(start, cfg, clock)
		require.NoError(t, err)

		assert.True(t, decision.CanCancel)
		assert.True(t, decision.IsFree)
		assert.Equal(t, time.Date(2025, 7, 15, 10, 0, 0, 0, rome), decision.Deadline)
		assert.Equal(t, 20.0, decision.FeePercent)
	})

	t.Run("fee after the deadline", func(t *testing.T) {
		clock := &siteclock.Fixed{Time: time.Date(2025, 7, 15, 18, 0, 0, 0, rome)}

		decision, err := EvaluateCancellation(start, cfg, clock)
		require.NoError(t, err)

		assert.True(t, decision.CanCancel)
		assert.False(t, decision.IsFree)
		assert.Equal(t, 20.0, decision.FeePercent)
	})

	t.Run("deadline moment itself is not free", func(t *testing.T) {
		clock := &siteclock.Fixed{Time: time.Date(2025, 7, 15, 10, 0, 0, 0, rome)}

		decision, err := EvaluateCancellation(start, cfg, clock)
		require.NoError(t, err)
		assert.False(t, decision.IsFree)
	})

	t.Run("invalid policy rejected", func(t *testing.T) {
		clock := &siteclock.Fixed{Time: time.Date(2025, 7, 14, 10, 0, 0, 0, rome)}

		_, err := EvaluateCancellation(start, domain.PolicyConfig{CancellationFeePercent: 150}, clock)
		assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
	})
}

func TestEvaluateCancellationForSlot_SiteTimezone(t *testing.T) {
	// Дедлайн за 180 минут до начала считается в таймзоне площадки
	auckland, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)

	cfg := domain.PolicyConfig{FreeCancelUntilMinutes: 180}
	date := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)

	clock := &siteclock.Fixed{Time: time.Date(2025, 7, 16, 6, 59, 0, 0, auckland)}
	decision, err := EvaluateCancellationForSlot(date, "10:00", cfg, clock)
	require.NoError(t, err)
	assert.True(t, decision.IsFree)

	clock = &siteclock.Fixed{Time: time.Date(2025, 7, 16, 7, 1, 0, 0, auckland)}
	decision, err = EvaluateCancellationForSlot(date, "10:00", cfg, clock)
	require.NoError(t, err)
	assert.False(t, decision.IsFree)
}
