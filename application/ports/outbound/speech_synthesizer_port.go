package outbound

import "context"

// SpeechSynthesizerPort turns segment text into narrated audio bytes.
// Rate-limit rejections are classified as domain.ErrRateLimited and
// retried within the adapter's budget.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
