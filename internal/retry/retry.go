// Package retry wraps pipeline operations in a bounded, classification-aware
// retry policy. Only transport failures, rate limiting, and transient
// upstream unavailability are retried; every other error kind is terminal
// and surfaces immediately.
package retry

import (
	"context"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
)

const defaultDelay = time.Second

// Do runs fn with up to maxRetries retries of recoverable failures. A
// server-signaled retry-after delay takes precedence over the fixed default
// delay. When attempts are exhausted the last observed failure is returned
// unchanged. maxRetries <= 0 means a single attempt.
func Do[T any](ctx context.Context, maxRetries int, fn func(ctx context.Context) (T, error)) (T, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	logger := config.GetLogger()

	policy := retrypolicy.NewBuilder[T]().
		HandleIf(func(_ T, err error) bool {
			return apperrors.Retryable(err)
		}).
		WithDelayFunc(func(exec failsafe.ExecutionAttempt[T]) time.Duration {
			if delay, ok := apperrors.RetryAfter(exec.LastError()); ok {
				return delay
			}
			return defaultDelay
		}).
		WithMaxRetries(maxRetries).
		OnRetry(func(e failsafe.ExecutionEvent[T]) {
			logger.Warn().
				Err(e.LastError()).
				Int("attempt", e.Attempts()).
				Msg("retrying after recoverable failure")
		}).
		ReturnLastFailure().
		Build()

	return failsafe.With[T](policy).
		WithContext(ctx).
		Get(func() (T, error) {
			return fn(ctx)
		})
}
