package adapters

import (
	"context"
	"time"
)

const (
	// MaxAttempts bounds every external capability call, the first
	// attempt included.
	MaxAttempts = 3

	backoffBase = time.Second
)

// withRetry runs op up to attempts times with a linearly growing
// backoff delay (base, 2*base, ...) between failures. A failure is only
// retried while shouldRetry reports it transient; once attempts are
// exhausted the last error is permanent for this invocation.
func withRetry(ctx context.Context, attempts int, base time.Duration, shouldRetry func(error) bool, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts || !shouldRetry(lastErr) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(base * time.Duration(attempt)):
		}
	}
	return lastErr
}
