package provider

import (
	"context"
	"math/rand"
	"time"
)

// BackoffPolicy is the retry schedule shared by all providers.
type BackoffPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      float64 // fraction of the delay randomized, 0..1
}

// DefaultBackoff mirrors the upstream retry settings: three attempts with
// a 500ms base doubling per attempt.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		Jitter:      0.2,
	}
}

// Delay returns the wait before the given retry (attempt is 1-based; the
// first retry follows attempt 1).
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		span := float64(d) * p.Jitter
		d = time.Duration(float64(d) - span/2 + rand.Float64()*span)
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Wait sleeps for the attempt's delay, honoring context cancellation.
func (p BackoffPolicy) Wait(ctx context.Context, attempt int) error {
	select {
	case <-time.After(p.Delay(attempt)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
