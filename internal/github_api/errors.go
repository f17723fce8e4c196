package githubapi

import (
	"fmt"
	"time"
)

// TimeoutError means the request did not finish within its bound.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %v", e.URL, e.Timeout)
}

// RemoteError is a non-2xx answer.
type RemoteError struct {
	URL         string
	StatusCode  int
	Status      string
	RateLimited bool
	ResetAt     time.Time
}

func (e *RemoteError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("GitHub %d: rate limit reached for %s, resets at %s", e.StatusCode, e.URL, e.ResetAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("GitHub %d: %s", e.StatusCode, e.URL)
}
