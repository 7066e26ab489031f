package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff(t *testing.T) {
	backoff := ExponentialBackoff(time.Second)

	var total time.Duration
	for attempt, want := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second} {
		assert.Equal(t, want, backoff(attempt))
		if attempt < 3 {
			total += backoff(attempt)
		}
	}
	// four attempts sleep three times
	assert.Equal(t, 7*time.Second, total)
}

func TestExponentialBackoff_Capped(t *testing.T) {
	backoff := ExponentialBackoff(time.Second)

	assert.Equal(t, 256*time.Second, backoff(8))
	assert.Equal(t, constants.MaxAssistantBackoff, backoff(9))
	for _, attempt := range []int{40, 63, 64, 200} {
		assert.Equal(t, constants.MaxAssistantBackoff, backoff(attempt), "attempt %d", attempt)
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 4, policy.MaxAttempts)
	assert.Equal(t, 2*time.Second, policy.Backoff(1))
}

func TestRetryPolicy_ReturnsLastError(t *testing.T) {
	var calls []int
	policy := RetryPolicy{MaxAttempts: 3, Backoff: ExponentialBackoff(time.Nanosecond)}

	err := policy.Do(context.Background(), func(_ context.Context, attempt int) error {
		calls = append(calls, attempt)
		return errors.New("attempt " + string(rune('0'+attempt)))
	})

	assert.EqualError(t, err, "attempt 2")
	assert.Equal(t, []int{0, 1, 2}, calls)
}

func TestRetryPolicy_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := RetryPolicy{}.Do(context.Background(), func(context.Context, int) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
