package services

import (
	"sync"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/domain"
)

type playbackDriver struct {
	logger       outbound.LoggerPort
	orchestrator inbound.PipelineOrchestratorPort

	mu       sync.Mutex
	state    domain.PlaybackState
	snapshot domain.PlaybackSnapshot
	updates  chan domain.PlaybackSnapshot
}

func NewPlaybackDriver(logger outbound.LoggerPort, orchestrator inbound.PipelineOrchestratorPort) inbound.PlaybackDriverPort {
	return &playbackDriver{
		logger:       logger,
		orchestrator: orchestrator,
		state:        domain.PlaybackIdle,
		snapshot:     domain.PlaybackSnapshot{State: domain.PlaybackIdle},
		updates:      make(chan domain.PlaybackSnapshot, 64),
	}
}

func (p *playbackDriver) BeginFetch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transitionLocked(domain.PlaybackLoading, 0)
}

// OnSegmentReady is called by the session event pump whenever a
// segment's enrichment completes. The only transition it drives is
// Loading -> Ready(0); a stall at a later cursor still needs an
// explicit Play to resume.
func (p *playbackDriver) OnSegmentReady(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PlaybackLoading {
		return
	}
	if _, ok := p.orchestrator.EnrichedAt(0); ok {
		p.transitionLocked(domain.PlaybackReady, 0)
	}
}

func (p *playbackDriver) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PlaybackReady && p.state != domain.PlaybackPaused {
		return domain.ErrSegmentNotReady
	}

	cursor := p.orchestrator.Cursor()
	if _, ok := p.orchestrator.EnrichedAt(cursor); !ok {
		// Blocked until the segment at the cursor becomes ready. The
		// caller stays Paused/Ready rather than failing the session.
		return domain.ErrSegmentNotReady
	}

	p.transitionLocked(domain.PlaybackPlaying, cursor)
	return nil
}

func (p *playbackDriver) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PlaybackPlaying {
		return
	}
	p.transitionLocked(domain.PlaybackPaused, p.orchestrator.Cursor())
}

func (p *playbackDriver) OnAudioEnded() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PlaybackPlaying {
		return
	}

	next := p.orchestrator.Advance()
	if next >= p.orchestrator.SegmentCount() {
		p.transitionLocked(domain.PlaybackFinished, next)
		return
	}
	if _, ok := p.orchestrator.EnrichedAt(next); !ok {
		p.transitionLocked(domain.PlaybackPaused, next)
		return
	}
	p.transitionLocked(domain.PlaybackPlaying, next)
}

func (p *playbackDriver) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger.Error(err, "Playback session failed, returning to idle")
	p.transitionLocked(domain.PlaybackIdle, 0)
}

func (p *playbackDriver) State() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *playbackDriver) Current() domain.PlaybackSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *playbackDriver) Updates() <-chan domain.PlaybackSnapshot {
	return p.updates
}

// transitionLocked swaps state and the full presentation snapshot in
// one step so readers never observe narration from one segment paired
// with the illustration of another.
func (p *playbackDriver) transitionLocked(state domain.PlaybackState, cursor int) {
	p.state = state
	snapshot := domain.PlaybackSnapshot{
		State:  state,
		Cursor: cursor,
	}
	if enriched, ok := p.orchestrator.EnrichedAt(cursor); ok {
		snapshot.AudioRef = enriched.AudioRef
		snapshot.ImageRef = enriched.ImageRef
		snapshot.Text = enriched.Text
		snapshot.Scenes = enriched.Scenes
	}
	p.snapshot = snapshot

	select {
	case p.updates <- snapshot:
	default:
	}
}
