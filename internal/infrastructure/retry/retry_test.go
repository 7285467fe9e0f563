package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fast returns a config with millisecond delays and no jitter.
func fast(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: 1 * time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		JitterFactor: 0,
	}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return nil
	}, DefaultConfig)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("upstream 503")
		}
		return nil
	}, fast(5))

	assert.NoError(t, err)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	var attempts int32
	expectedErr := errors.New("persistent error")

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return expectedErr
	}, fast(3))

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var attempts int32

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, func() error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("temporary error")
	}, Config{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Do(ctx, func() error {
		return errors.New("temporary error")
	}, Config{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestDo_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var attempts int32
	err := Do(ctx, func() error {
		atomic.AddInt32(&attempts, 1)
		return nil
	}, DefaultConfig)

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, int32(0), attempts)
}

func TestDo_RetryIfPredicate(t *testing.T) {
	var attempts int32
	retryableErr := errors.New("retryable")
	nonRetryableErr := errors.New("non-retryable")

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return retryableErr
		}
		return nonRetryableErr
	}, fast(5).WithRetryIf(func(err error) bool {
		return errors.Is(err, retryableErr)
	}))

	assert.Equal(t, nonRetryableErr, err)
	assert.Equal(t, int32(2), attempts)
}

func TestDo_PermanentStopsByDefault(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("retryable")
		}
		return NewPermanent(errors.New("bad request"))
	}, fast(5))

	assert.True(t, IsPermanent(err))
	assert.Equal(t, int32(2), attempts)
}

func TestDo_ExponentialBackoff(t *testing.T) {
	var waits []time.Duration

	cfg := Config{
		MaxAttempts:  4,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     25 * time.Millisecond,
		Multiplier:   2.0,
	}.WithOnRetry(func(attempt int, err error, wait time.Duration) {
		waits = append(waits, wait)
	})

	err := Do(context.Background(), func() error {
		return errors.New("temporary")
	}, cfg)

	require.Error(t, err)
	assert.Equal(t, []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		25 * time.Millisecond,
	}, waits)
}

func TestDo_OnRetryReceivesAttemptAndError(t *testing.T) {
	cause := errors.New("connection reset")
	var seen []int

	_ = Do(context.Background(), func() error {
		return cause
	}, fast(3).WithOnRetry(func(attempt int, err error, _ time.Duration) {
		assert.Equal(t, cause, err)
		seen = append(seen, attempt)
	}))

	assert.Equal(t, []int{1, 2}, seen)
}

func TestDo_ZeroMaxAttempts(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("fail")
	}, Config{MaxAttempts: 0})

	assert.Error(t, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDoWithResult_SuccessAfterRetries(t *testing.T) {
	type quote struct {
		Outbound string
		Total    string
	}
	var attempts int32

	result, err := DoWithResult(context.Background(), func() (quote, error) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return quote{}, errors.New("temporary")
		}
		return quote{Outbound: "2024-06-01", Total: "49.98"}, nil
	}, fast(3))

	assert.NoError(t, err)
	assert.Equal(t, "49.98", result.Total)
	assert.Equal(t, int32(2), attempts)
}

func TestDoWithResult_ReturnsLastResultOnFailure(t *testing.T) {
	expectedErr := errors.New("persistent error")

	result, err := DoWithResult(context.Background(), func() (string, error) {
		return "partial", expectedErr
	}, fast(3))

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, "partial", result)
}

func TestCalculateSleepTime(t *testing.T) {
	tests := []struct {
		name     string
		delay    time.Duration
		maxDelay time.Duration
		jitter   float64
		min, max time.Duration
	}{
		{"no jitter", 10 * time.Millisecond, time.Second, 0, 10 * time.Millisecond, 10 * time.Millisecond},
		{"jitter bounded", 100 * time.Millisecond, time.Second, 0.5, 100 * time.Millisecond, 150 * time.Millisecond},
		{"capped", time.Second, 200 * time.Millisecond, 0.5, 200 * time.Millisecond, 200 * time.Millisecond},
		{"zero max means uncapped", time.Second, 0, 0, time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateSleepTime(tt.delay, tt.maxDelay, tt.jitter)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestPermanentError(t *testing.T) {
	originalErr := errors.New("validation failed")
	permanent := NewPermanent(originalErr)

	assert.True(t, IsPermanent(permanent))
	assert.Equal(t, "validation failed", permanent.Error())
	assert.ErrorIs(t, permanent, originalErr)

	assert.Nil(t, NewPermanent(nil))
	assert.Equal(t, "permanent error", (&Permanent{}).Error())
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(NewPermanent(errors.New("test"))))
	assert.False(t, IsPermanent(errors.New("regular error")))
	assert.False(t, IsPermanent(nil))

	assert.True(t, SkipPermanent(errors.New("regular")))
	assert.False(t, SkipPermanent(NewPermanent(errors.New("permanent"))))
}

func TestConfig_Builders(t *testing.T) {
	cfg := DefaultConfig.
		WithMaxAttempts(5).
		WithInitialDelay(200 * time.Millisecond).
		WithMaxDelay(5 * time.Second).
		WithRetryIf(SkipPermanent)

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.NotNil(t, cfg.RetryIf)

	// Builders copy; the preset is untouched
	assert.Equal(t, 3, DefaultConfig.MaxAttempts)
	assert.Nil(t, DefaultConfig.RetryIf)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, 3, DefaultConfig.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, DefaultConfig.InitialDelay)
	assert.Equal(t, 2*time.Second, DefaultConfig.MaxDelay)

	assert.Equal(t, 3, QuoteConfig.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, QuoteConfig.InitialDelay)
	assert.Equal(t, 3*time.Second, QuoteConfig.MaxDelay)
	assert.Equal(t, 0.2, QuoteConfig.JitterFactor)
}
