package outbound

import "context"

// ImageSynthesizerPort generates an illustration from a prompt. A
// non-success response status is retryable within a fixed attempt
// budget; implementations classify it as domain.ErrNonSuccessStatus.
type ImageSynthesizerPort interface {
	Synthesize(ctx context.Context, prompt string) ([]byte, error)
}
