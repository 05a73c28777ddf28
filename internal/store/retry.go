package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/billdonner/obo-gen/internal/platform/logger"
)

// Connection retry schedule defaults.
const (
	DefaultConnectAttempts  = 4
	DefaultConnectBaseDelay = 500 * time.Millisecond
	DefaultConnectMaxDelay  = 4 * time.Second
)

// RetryPolicy bounds the attempts made to reach a store. The delay before
// attempt n+1 is BaseDelay doubled n-1 times, capped at MaxDelay.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy is the production connection schedule.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  DefaultConnectAttempts,
		BaseDelay: DefaultConnectBaseDelay,
		MaxDelay:  DefaultConnectMaxDelay,
	}
}

// NoDelayRetryPolicy retries up to attempts times without sleeping.
func NoDelayRetryPolicy(attempts int) RetryPolicy {
	return RetryPolicy{Attempts: attempts}
}

func (p RetryPolicy) backoff() retry.Backoff {
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	})
	if p.BaseDelay > 0 {
		maxDelay := p.MaxDelay
		if maxDelay < p.BaseDelay {
			maxDelay = p.BaseDelay
		}
		b = retry.WithCappedDuration(maxDelay, retry.NewExponential(p.BaseDelay))
	}

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), b)
}

// Connect calls dial until it succeeds or the policy is exhausted. Every
// dial error is treated as transient. The final error wraps
// ErrConnectionFailed and the last dial error.
func Connect[T any](ctx context.Context, p RetryPolicy, dial func(ctx context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)
	attempt := 0

	conn, err := retry.DoValue(ctx, p.backoff(), func(ctx context.Context) (T, error) {
		attempt++
		conn, err := dial(ctx)
		if err != nil {
			log.Warn("store connection attempt failed",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", p.Attempts),
				slog.String("error", err.Error()))
			return conn, retry.RetryableError(err)
		}
		return conn, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w after %d attempt(s): %w", ErrConnectionFailed, attempt, err)
	}

	if attempt > 1 {
		log.Info("store connection established", slog.Int("attempts", attempt))
	}
	return conn, nil
}
