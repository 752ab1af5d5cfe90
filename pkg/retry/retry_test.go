package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			return errors.New("still failing")
		})
		require.Error(t, err)
		assert.Equal(t, 4, calls) // initial attempt + 3 retries
	})

	t.Run("respects context cancellation between attempts", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		err := Do(cancelCtx, fastConfig(), func() error {
			return errors.New("failing")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDoWithResult(t *testing.T) {
	ctx := context.Background()

	calls := 0
	got, err := DoWithResult(ctx, fastConfig(), func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("timeout")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
}

func TestDoIfRetryable(t *testing.T) {
	ctx := context.Background()

	t.Run("permanent error returns without retrying", func(t *testing.T) {
		calls := 0
		err := DoIfRetryable(ctx, fastConfig(), func() error {
			calls++
			return errors.New("401 unauthorized")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("transient error is retried", func(t *testing.T) {
		calls := 0
		err := DoIfRetryable(ctx, fastConfig(), func() error {
			calls++
			if calls < 2 {
				return errors.New("503 service unavailable")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("connection refused"), true},
		{errors.New("dial tcp: i/o timeout"), true},
		{errors.New("HTTP 429 Too Many Requests"), true},
		{errors.New("HTTP 503 Service Unavailable"), true},
		{errors.New("rate limit exceeded"), true},
		{errors.New("401 unauthorized"), false},
		{errors.New("invalid request body"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryable(tt.err), "error: %v", tt.err)
	}
}
