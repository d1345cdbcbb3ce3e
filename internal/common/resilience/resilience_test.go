package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feasibility-workers/internal/common/logger"
)

func TestRetryWithBackoff_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond}, func() error {
		calls++
		return errors.New("down")
	})

	assert.EqualError(t, err, "down")
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, RetryConfig{MaxRetries: 5, InitialBackoff: time.Millisecond}, func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestBackoff_Capped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 2 * time.Second}
	for i := 0; i < 20; i++ {
		wait := backoff(cfg, 6)
		assert.GreaterOrEqual(t, wait, 2*time.Second)
		assert.Less(t, wait, 3*time.Second)
	}
	assert.Zero(t, backoff(RetryConfig{}, 0))
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("ses", logger.NewNoOpLogger())
	failing := errors.New("throttled")

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, Call(cb, func() error { return failing }), failing)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	called := false
	err := Call(cb, func() error {
		called = true
		return nil
	})
	assert.True(t, IsOpen(err))
	assert.False(t, called)
}

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker("sns", nil)
	for i := 0; i < 10; i++ {
		require.NoError(t, Call(cb, func() error { return nil }))
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, IsOpen(errors.New("other")))
}
