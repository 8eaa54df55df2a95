package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes a bounded exponential backoff: attempt n waits
// BaseDelay * 2^(n-1) milliseconds before running, up to MaxAttempts
// attempts total. AttemptTimeout, when positive, bounds each attempt
// with its own deadline.
type Policy struct {
	MaxAttempts    int   `yaml:"max_attempts"`
	BaseDelay      int64 `yaml:"base_delay_in_ms"`
	AttemptTimeout int64 `yaml:"attempt_timeout_in_ms"`
}

// Do runs op until it succeeds or MaxAttempts is exhausted. It returns the
// number of attempts made alongside the last error. A context cancellation
// stops the wait immediately.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	baseDelay := time.Duration(p.BaseDelay) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = baseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = baseDelay << uint(maxAttempts)
	bo.MaxElapsedTime = 0

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++

		attemptCtx := ctx
		if p.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, time.Duration(p.AttemptTimeout)*time.Millisecond)
			defer cancel()
		}

		return op(attemptCtx)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx))

	return attempts, err
}
