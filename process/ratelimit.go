package process

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles recognition calls using a token bucket. Hosted OCR
// backends enforce per-minute quotas; the limiter keeps a batch run under
// them regardless of concurrency.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter with the specified requests per second limit
// and a burst of 1 (no bursting allowed).
func NewLimiter(rps float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the rate limit allows another recognition call.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
