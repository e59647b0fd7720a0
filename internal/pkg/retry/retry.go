// Package retry provides the bounded retry combinator for optimistic
// concurrency conflicts. Only errs.ErrConcurrencyConflict is retried; every
// other error aborts immediately, so capacity boundaries and validation
// failures are never masked by retry loops.
package retry

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const initialInterval = 5 * time.Millisecond

// OnConflict runs op, retrying with exponential backoff while it fails with a
// ConcurrencyConflict, up to maxAttempts total attempts. The operation must
// re-read its baseline on each attempt; OnConflict never resumes a partial
// effect because a conflicting attempt committed nothing.
//
// Returns nil on the first success, the last ConcurrencyConflict after the
// attempt budget is exhausted, or the first non-retryable error unchanged.
func OnConflict(ctx context.Context, maxAttempts uint64, op func() error) error {
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	wrapped := func() error {
		err := op()
		if err != nil && !errors.Is(err, errs.ErrConcurrencyConflict) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval

	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(b, maxAttempts-1), ctx))
}
