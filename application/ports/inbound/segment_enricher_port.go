package inbound

import (
	"context"

	"github.com/a1j9o94/visual-audio-books/domain"
)

type EnrichSegmentParams struct {
	Segment   domain.TextSegment
	BookTitle string
}

// SegmentEnricherPort runs the three enrichment calls for one segment:
// speech synthesis and scene extraction concurrently, then image
// synthesis from the first extracted shot. New characters are merged
// into the ledger before the result is final.
type SegmentEnricherPort interface {
	Enrich(ctx context.Context, params EnrichSegmentParams) (domain.EnrichedSegment, error)
}
