package rag

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxRetries      = 3
	DefaultInitialInterval = 500 * time.Millisecond
)

// Retry runs op with bounded exponential backoff, retrying only the transient
// external-service failures (IsRetryable). Permanent errors and context
// cancellation stop the retries immediately.
func Retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newExponential(), DefaultMaxRetries), ctx)
	return backoff.Retry(func() error {
		err := op()
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func newExponential() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = DefaultInitialInterval
	return b
}
