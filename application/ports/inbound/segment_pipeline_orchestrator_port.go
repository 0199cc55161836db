package inbound

import (
	"context"

	"github.com/a1j9o94/visual-audio-books/domain"
)

type StartPipelineParams struct {
	SessionID string
	BookTitle string
	Segments  []domain.TextSegment
}

// PipelineOrchestratorPort drives segment enrichment in ascending id
// order with bounded lookahead ahead of the playback cursor. Enrichment
// requests for a given id are issued at most once; a segment whose
// enrichment permanently fails is simply absent from the enriched
// sequence and never retried automatically.
type PipelineOrchestratorPort interface {
	// Start resets pipeline state for a freshly segmented book and
	// requests enrichment of the first InitialLookahead segments,
	// processed sequentially in ascending id order so ledger reads stay
	// ordered across segments.
	Start(ctx context.Context, params StartPipelineParams) error

	// RequestEnrichment schedules enrichment for the given segment id
	// unless it is already in flight, complete or failed.
	RequestEnrichment(id int)

	// Advance moves the playback cursor forward one segment, tops up the
	// lookahead buffer, and returns the new cursor.
	Advance() int

	Cursor() int
	SegmentCount() int
	EnrichedAt(id int) (domain.EnrichedSegment, bool)
	HasFailed(id int) bool

	// Ready and Failed publish per-segment completion events for the
	// playback surface. Both channels are replaced on every Start.
	Ready() <-chan domain.SegmentReadyEvent
	Failed() <-chan domain.SegmentFailedEvent
}
