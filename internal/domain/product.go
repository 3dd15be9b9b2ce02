package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy возвращается при некорректной политике продукта
var ErrInvalidPolicy = errors.New("domain: invalid booking policy")

// Product is the bookable experience with its per-product booking policy.
// Product rows are owned by the commerce catalog; this service reads them.
type Product struct {
	ID                     int64
	Name                   string
	IsActive               bool
	CutoffMinutes          int
	FreeCancelUntilMinutes int
	CancellationFeePercent float64
	DefaultMeetingPointID  *int64
	CreatedAt              time.Time
}

// Policy returns the validated booking policy of the product
func (p *Product) Policy() (PolicyConfig, error) {
	cfg := PolicyConfig{
		CutoffMinutes:          p.CutoffMinutes,
		FreeCancelUntilMinutes: p.FreeCancelUntilMinutes,
		CancellationFeePercent: p.CancellationFeePercent,
	}
	if err := cfg.Validate(); err != nil {
		return PolicyConfig{}, err
	}
	return cfg, nil
}

// PolicyConfig is the explicit per-product policy passed into the cutoff
// and cancellation checks. No ambient global settings are consulted.
type PolicyConfig struct {
	// CutoffMinutes minimum lead time before slot start; 0 = no cutoff
	CutoffMinutes int
	// FreeCancelUntilMinutes free-cancellation window before slot start
	FreeCancelUntilMinutes int
	// CancellationFeePercent fee charged when cancelling past the deadline
	CancellationFeePercent float64
}

// Validate rejects policies that the legacy schema allowed but never defined
// behavior for. Negative values are configuration mistakes, not defaults.
func (c PolicyConfig) Validate() error {
	if c.CutoffMinutes < 0 {
		return fmt.Errorf("%w: cutoff_minutes must not be negative, got %d", ErrInvalidPolicy, c.CutoffMinutes)
	}
	if c.FreeCancelUntilMinutes < 0 {
		return fmt.Errorf("%w: free_cancel_until_minutes must not be negative, got %d", ErrInvalidPolicy, c.FreeCancelUntilMinutes)
	}
	if c.CancellationFeePercent < 0 || c.CancellationFeePercent > 100 {
		return fmt.Errorf("%w: cancellation_fee_percent must be within [0,100], got %v", ErrInvalidPolicy, c.CancellationFeePercent)
	}
	return nil
}

// CancellationDecision is the outcome of evaluating a booking against the
// product's cancellation policy at a point in time
type CancellationDecision struct {
	CanCancel  bool
	Deadline   time.Time // free-cancellation deadline in site-local time
	IsFree     bool
	FeePercent float64
}
