package limiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter caps outbound requests in a sliding one second window.
// A nil *RateLimiter allows everything.
type RateLimiter struct {
	requestTimes []time.Time
	maxRequests  int
	now          func() time.Time
	mu           sync.Mutex
}

// NewRateLimiter returns nil when maxRequests <= 0.
func NewRateLimiter(maxRequests int) *RateLimiter {
	if maxRequests <= 0 {
		return nil
	}
	return &RateLimiter{
		requestTimes: make([]time.Time, 0, maxRequests),
		maxRequests:  maxRequests,
		now:          time.Now,
	}
}

// Allow records a request and reports whether it fits in the window.
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	oneSecondAgo := now.Add(-1 * time.Second)

	validTimes := r.requestTimes[:0]
	for _, t := range r.requestTimes {
		if t.After(oneSecondAgo) {
			validTimes = append(validTimes, t)
		}
	}
	r.requestTimes = validTimes

	if len(r.requestTimes) < r.maxRequests {
		r.requestTimes = append(r.requestTimes, now)
		return true
	}
	return false
}

// Wait polls Allow every delay until it succeeds or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		delay = 50 * time.Millisecond
	}
	for !r.Allow() {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
