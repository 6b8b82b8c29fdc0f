package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a missing entry in backends that distinguish it
	// from a miss.
	ErrNotFound = errors.New("cache entry not found")

	// ErrNetwork wraps connection failures and timeouts of remote backends.
	ErrNetwork = errors.New("cache backend unreachable")
)

// RetryableError marks a transient failure. Only errors carrying it are
// retried by [RetryPolicy.Do].
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err or any error it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy retries an operation with doubling delays.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// retryDelay is the first delay of DefaultRetry; tests shorten it.
var retryDelay = time.Second

// DefaultRetry makes three attempts starting with retryDelay.
func DefaultRetry() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: retryDelay}
}

// Do calls fn until it succeeds, fails with a non-retryable error, runs out
// of attempts or ctx is done. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			delay *= 2
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}

// RetryWithBackoff runs fn under [DefaultRetry].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultRetry().Do(ctx, fn)
}
