package client

import (
	"context"
	"time"
)

// RetryPolicy decides which fetch failures are retried and how long to wait
// between attempts. The sleep function is injectable so tests can run the
// schedule against a fake clock.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts for transient failures
	// (timeouts and 5xx), including the first.
	MaxAttempts int
	// Delay is the fixed wait between transient retries.
	Delay time.Duration
	// RateLimitRetries is how many times a 429 is retried.
	RateLimitRetries int
	// RateLimitDelay is the longer wait after a 429.
	RateLimitDelay time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy matches the observed upstream behavior: two retries
// with a short fixed delay for transient failures, one retry after a longer
// delay when rate limited.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:      3,
		Delay:            500 * time.Millisecond,
		RateLimitRetries: 1,
		RateLimitDelay:   5 * time.Second,
		sleep:            sleepContext,
	}
}

// Retryable reports whether a failure in the given category is eligible for
// another transient attempt. Rate limiting is budgeted separately.
func (p RetryPolicy) Retryable(category ErrorCategory) bool {
	switch category {
	case CategoryTimeout, CategoryServerError:
		return true
	default:
		return false
	}
}

func (p RetryPolicy) wait(ctx context.Context, category ErrorCategory) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	if category == CategoryRateLimited {
		return sleep(ctx, p.RateLimitDelay)
	}
	return sleep(ctx, p.Delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
