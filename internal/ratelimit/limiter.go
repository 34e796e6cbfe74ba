// Package ratelimit bounds the rate of outbound requests against the
// data-source API. The limiter is constructed explicitly and injected into
// the ingestor; there is no process-wide instance.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces calls to a single external API.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter allowing perSecond requests with the given burst.
// A non-positive perSecond yields an unlimited limiter.
func New(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return Unlimited()
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Unlimited creates a Limiter that never blocks. Used in tests.
func Unlimited() *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
}

// Wait blocks until the next request is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
