package main

import (
	"context"
	"time"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/cenkalti/backoff/v4"
)

// retryPolicy bounds how often a transient store failure is retried
type retryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// OnRetry, when set, is told about every failure that will be retried
	OnRetry func(attempt int, err error)
}

func (p retryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// retryTransient retries op while it fails with a database error.
// Any other error is returned after the first attempt.
func retryTransient(ctx context.Context, policy retryPolicy, log *logger.Logger, op func(ctx context.Context) error) error {
	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			err := op(ctx)
			if err == nil || ierr.IsDatabase(err) {
				return err
			}
			return backoff.Permanent(err)
		},
		policy.backOff(ctx),
		func(err error, next time.Duration) {
			log.Warnw("transient failure, retrying",
				"attempt", attempt,
				"next_in", next,
				"error", err)
			if policy.OnRetry != nil {
				policy.OnRetry(attempt, err)
			}
		},
	)
}
