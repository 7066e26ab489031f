package assistant

import (
	"context"
	"time"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
)

// RetryPolicy runs an operation up to MaxAttempts times, sleeping
// Backoff(attempt) after each failed attempt except the last.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration

	// Sleep waits for d or until ctx is done. Defaults to SleepContext.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ExponentialBackoff returns a backoff of 2^attempt units: 1, 2, 4, 8...
// capped at constants.MaxAssistantBackoff.
func ExponentialBackoff(unit time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		d := unit
		for i := 0; i < attempt; i++ {
			if d >= constants.MaxAssistantBackoff/2 {
				return constants.MaxAssistantBackoff
			}
			d *= 2
		}
		return min(d, constants.MaxAssistantBackoff)
	}
}

// DefaultRetryPolicy makes four attempts with one-second exponential backoff
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: constants.DefaultAssistantMaxAttempts,
		Backoff:     ExponentialBackoff(constants.DefaultAssistantBackoffUnit),
	}
}

// SleepContext blocks for d, returning early with ctx.Err() if ctx is done
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do calls fn until it succeeds or the attempts are used up. It returns
// the error of the last attempt made. A cancelled context stops the loop
// and its error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		if attempt == attempts-1 || p.Backoff == nil {
			continue
		}
		if sleepErr := sleep(ctx, p.Backoff(attempt)); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}
