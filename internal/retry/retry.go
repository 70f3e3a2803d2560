package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config describes one retry policy. The fetcher composes two of these:
// a connection-level policy with exponential backoff inside a
// request-level policy with a fixed delay, so the effective maximum
// attempt count is the product of both MaxAttempts.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // exponential backoff, doubling from Delay
}

type unrecoverableError struct {
	err error
}

func (u *unrecoverableError) Error() string { return u.err.Error() }
func (u *unrecoverableError) Unwrap() error { return u.err }

// Unrecoverable marks err so WithRetry gives up immediately instead of
// burning the remaining attempts (e.g. an HTTP 404).
func Unrecoverable(err error) error {
	return &unrecoverableError{err: err}
}

func isUnrecoverable(err error) bool {
	var u *unrecoverableError
	return errors.As(err, &u)
}

// WithRetry runs fn up to config.MaxAttempts times, sleeping between
// attempts and honoring ctx cancellation.
func WithRetry(ctx context.Context, config Config, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if isUnrecoverable(err) {
				return err
			}
			if attempt == config.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
			}

			delay := config.Delay
			if config.Backoff {
				delay = config.Delay << (attempt - 1)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}

	return lastErr
}
