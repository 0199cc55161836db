package services

import (
	"context"
	"sync"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/domain"
)

const (
	// InitialLookahead is how many segments Start enriches before
	// playback begins.
	InitialLookahead = 3

	// LookaheadDistance is how far ahead of the cursor Advance keeps
	// the enriched buffer topped up.
	LookaheadDistance = 2
)

type segmentPipelineOrchestrator struct {
	logger   outbound.LoggerPort
	enricher inbound.SegmentEnricherPort

	mu         sync.Mutex
	generation int
	sessionID  string
	bookTitle  string
	segments   []domain.TextSegment
	enriched   map[int]domain.EnrichedSegment
	failed     map[int]bool
	requested  map[int]bool
	cursor     int
	queue      chan int
	readyCh    chan domain.SegmentReadyEvent
	failedCh   chan domain.SegmentFailedEvent
	cancel     context.CancelFunc
}

func NewSegmentPipelineOrchestrator(logger outbound.LoggerPort,
	enricher inbound.SegmentEnricherPort) inbound.PipelineOrchestratorPort {
	return &segmentPipelineOrchestrator{
		logger:    logger,
		enricher:  enricher,
		enriched:  make(map[int]domain.EnrichedSegment),
		failed:    make(map[int]bool),
		requested: make(map[int]bool),
	}
}

// Start resets all pipeline state and schedules the initial lookahead.
// A single worker drains the id queue, so enrichment of distinct
// segments runs strictly one at a time in request order: scene
// extraction for segment n+1 never reads the character ledger before
// segment n's extraction merged its new characters.
//
// The worker runs on its own goroutine rather than the bounded worker
// pool: it lives for the whole session, and a pinned pool worker per
// session would starve the pool of capacity for actual enrichment
// tasks. Each Start bumps a generation counter; a worker from a prior
// generation that was mid-enrichment discards its result instead of
// writing into the fresh session's state.
func (s *segmentPipelineOrchestrator) Start(ctx context.Context, params inbound.StartPipelineParams) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	newCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.generation++
	generation := s.generation
	s.sessionID = params.SessionID
	s.bookTitle = params.BookTitle
	s.segments = params.Segments
	s.enriched = make(map[int]domain.EnrichedSegment)
	s.failed = make(map[int]bool)
	s.requested = make(map[int]bool)
	s.cursor = 0
	s.queue = make(chan int, len(params.Segments)+1)
	s.readyCh = make(chan domain.SegmentReadyEvent, len(params.Segments))
	s.failedCh = make(chan domain.SegmentFailedEvent, len(params.Segments))
	queue := s.queue
	s.mu.Unlock()

	go func() {
		for {
			select {
			case <-newCtx.Done():
				return
			case id, ok := <-queue:
				if !ok {
					return
				}
				s.enrichSegment(newCtx, generation, id)
			}
		}
	}()

	initial := InitialLookahead
	if initial > len(params.Segments) {
		initial = len(params.Segments)
	}
	for id := 0; id < initial; id++ {
		s.RequestEnrichment(id)
	}

	return nil
}

func (s *segmentPipelineOrchestrator) RequestEnrichment(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= len(s.segments) || s.requested[id] {
		return
	}
	s.requested[id] = true
	s.queue <- id
}

// Advance moves the cursor past the segment playback just finished and
// tops up the lookahead buffer. Requests are deduplicated, so reaching
// the same target twice never issues a second enrichment.
func (s *segmentPipelineOrchestrator) Advance() int {
	s.mu.Lock()
	s.cursor++
	cursor := s.cursor
	target := cursor + LookaheadDistance
	inRange := target < len(s.segments)
	s.mu.Unlock()

	if inRange {
		s.RequestEnrichment(target)
	}

	return cursor
}

func (s *segmentPipelineOrchestrator) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *segmentPipelineOrchestrator) SegmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segments)
}

func (s *segmentPipelineOrchestrator) EnrichedAt(id int) (domain.EnrichedSegment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enriched, ok := s.enriched[id]
	return enriched, ok
}

func (s *segmentPipelineOrchestrator) HasFailed(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed[id]
}

func (s *segmentPipelineOrchestrator) Ready() <-chan domain.SegmentReadyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyCh
}

func (s *segmentPipelineOrchestrator) Failed() <-chan domain.SegmentFailedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedCh
}

// enrichSegment runs on the single queue worker. Failures are captured
// here and never escape the scheduling loop; a failed id is simply
// absent from the enriched sequence. Results from a stale generation
// (a worker that was mid-enrichment when Start reset the session) are
// dropped without touching state or channels.
func (s *segmentPipelineOrchestrator) enrichSegment(ctx context.Context, generation int, id int) {
	s.mu.Lock()
	if generation != s.generation || id >= len(s.segments) {
		s.mu.Unlock()
		return
	}
	segment := s.segments[id]
	bookTitle := s.bookTitle
	sessionID := s.sessionID
	readyCh := s.readyCh
	failedCh := s.failedCh
	s.mu.Unlock()

	enriched, err := s.enricher.Enrich(ctx, inbound.EnrichSegmentParams{
		Segment:   segment,
		BookTitle: bookTitle,
	})

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.failed[id] = true
		s.mu.Unlock()
		s.logger.ErrorWithFields(err, "Segment enrichment failed permanently", map[string]interface{}{
			"session_id": sessionID,
			"segment_id": id,
		})
		select {
		case failedCh <- domain.SegmentFailedEvent{SessionID: sessionID, SegmentID: id, Message: err.Error()}:
		default:
		}
		return
	}
	s.enriched[id] = enriched
	s.mu.Unlock()

	s.logger.DebugWithFields("Segment enriched", map[string]interface{}{
		"session_id": sessionID,
		"segment_id": id,
		"audio_ref":  enriched.AudioRef,
		"image_ref":  enriched.ImageRef,
	})

	select {
	case readyCh <- domain.SegmentReadyEvent{
		SessionID: sessionID,
		SegmentID: id,
		AudioRef:  enriched.AudioRef,
		ImageRef:  enriched.ImageRef,
	}:
	default:
	}
}
