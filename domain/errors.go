package domain

import "errors"

// Error taxonomy for enrichment calls. Adapters classify provider
// failures into one of these so the orchestrator can decide retry and
// fallback behavior without knowing provider details.
var (
	// ErrBookNotFound means no matching book or no downloadable edition
	// exists. Fatal to the whole session.
	ErrBookNotFound = errors.New("book not found")

	// ErrRateLimited marks a transient rate-limit rejection, retryable
	// within the per-call budget.
	ErrRateLimited = errors.New("rate limited")

	// ErrNonSuccessStatus marks a non-2xx provider response, retryable
	// within the per-call budget.
	ErrNonSuccessStatus = errors.New("non-success status")

	// ErrMalformedResponse means scene extraction returned data that
	// could not be parsed even after stripping formatting wrappers.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrSegmentNotReady is returned when playback asks for a segment
	// whose enrichment has not completed (or permanently failed).
	ErrSegmentNotReady = errors.New("segment not ready")

	// ErrSessionNotFound is returned for operations on an unknown or
	// expired session id.
	ErrSessionNotFound = errors.New("session not found")
)

// IsRetryable reports whether a single failed attempt may be retried
// within its budget. Exhausting the budget makes any error permanent
// for that invocation regardless of classification.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNonSuccessStatus)
}
