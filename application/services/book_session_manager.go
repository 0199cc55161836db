package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/channel_utils"
	"github.com/a1j9o94/visual-audio-books/domain"
)

const subscriberBuffer = 64

type bookSession struct {
	info         inbound.SessionInfo
	orchestrator inbound.PipelineOrchestratorPort
	driver       inbound.PlaybackDriverPort

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]chan domain.SessionEvent
}

// publish fans the event out to every subscriber. A subscriber that
// stopped draining its buffer misses events rather than stalling the
// pipeline.
func (s *bookSession) publish(ev domain.SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscribers {
		select {
		case sub <- ev:
		default:
		}
	}
}

func (s *bookSession) subscribe() (<-chan domain.SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	sub := make(chan domain.SessionEvent, subscriberBuffer)
	s.subscribers[id] = sub

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}

	return sub, cancel
}

type bookSessionManager struct {
	logger          outbound.LoggerPort
	bookFetcher     outbound.BookFetcherPort
	segmenter       inbound.TextSegmenterPort
	enricher        inbound.SegmentEnricherPort
	wordsPerSegment int

	mu       sync.Mutex
	sessions map[string]*bookSession
}

func NewBookSessionManager(logger outbound.LoggerPort, bookFetcher outbound.BookFetcherPort,
	segmenter inbound.TextSegmenterPort, enricher inbound.SegmentEnricherPort,
	wordsPerSegment int) inbound.BookSessionManagerPort {
	return &bookSessionManager{
		logger:          logger,
		bookFetcher:     bookFetcher,
		segmenter:       segmenter,
		enricher:        enricher,
		wordsPerSegment: wordsPerSegment,
		sessions:        make(map[string]*bookSession),
	}
}

func (m *bookSessionManager) CreateSession(ctx context.Context, params inbound.CreateSessionParams) (inbound.SessionInfo, error) {
	fullText, err := m.bookFetcher.FetchBookText(ctx, params.BookTitle)
	if err != nil {
		return inbound.SessionInfo{}, err
	}

	segments := m.segmenter.Segment(m.segmenter.Preprocess(fullText), m.wordsPerSegment)
	if len(segments) == 0 {
		return inbound.SessionInfo{}, fmt.Errorf("edition for %q has no words: %w", params.BookTitle, domain.ErrBookNotFound)
	}

	sessionID := uuid.NewString()
	orchestrator := NewSegmentPipelineOrchestrator(m.logger, m.enricher)
	driver := NewPlaybackDriver(m.logger, orchestrator)
	driver.BeginFetch()

	session := &bookSession{
		info: inbound.SessionInfo{
			SessionID:    sessionID,
			BookTitle:    params.BookTitle,
			SegmentCount: len(segments),
		},
		orchestrator: orchestrator,
		driver:       driver,
		subscribers:  make(map[int]chan domain.SessionEvent),
	}

	// The pipeline outlives the HTTP request that created the session,
	// so it runs under its own context, not the caller's.
	err = orchestrator.Start(context.Background(), inbound.StartPipelineParams{
		SessionID: sessionID,
		BookTitle: params.BookTitle,
		Segments:  segments,
	})
	if err != nil {
		driver.Fail(err)
		return inbound.SessionInfo{}, err
	}

	session.startEventPump()

	m.mu.Lock()
	m.sessions[sessionID] = session
	m.mu.Unlock()

	m.logger.InfoWithFields("Created playback session", map[string]interface{}{
		"session_id":    sessionID,
		"book_title":    params.BookTitle,
		"segment_count": len(segments),
	})

	return session.info, nil
}

func (m *bookSessionManager) Play(sessionID string) (domain.PlaybackSnapshot, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return domain.PlaybackSnapshot{}, err
	}
	if err := session.driver.Play(); err != nil {
		return session.driver.Current(), err
	}
	return session.driver.Current(), nil
}

func (m *bookSessionManager) Pause(sessionID string) (domain.PlaybackSnapshot, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return domain.PlaybackSnapshot{}, err
	}
	session.driver.Pause()
	return session.driver.Current(), nil
}

func (m *bookSessionManager) Advance(sessionID string) (domain.PlaybackSnapshot, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return domain.PlaybackSnapshot{}, err
	}
	session.driver.OnAudioEnded()
	return session.driver.Current(), nil
}

func (m *bookSessionManager) Snapshot(sessionID string) (domain.PlaybackSnapshot, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return domain.PlaybackSnapshot{}, err
	}
	return session.driver.Current(), nil
}

func (m *bookSessionManager) Subscribe(sessionID string) (<-chan domain.SessionEvent, func(), error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}
	sub, cancel := session.subscribe()
	return sub, cancel, nil
}

func (m *bookSessionManager) lookup(sessionID string) (*bookSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", sessionID, domain.ErrSessionNotFound)
	}
	return session, nil
}

// startEventPump bridges the orchestrator's completion channels and the
// driver's state transitions into one merged stream of session events.
// Ready events reach the driver before they reach subscribers, so a
// client that reacts to segment_ready always observes the updated
// playback state.
//
// The pump loops last for the session's whole lifetime, so they run on
// dedicated goroutines; the bounded worker pool is reserved for finite
// enrichment tasks and must never be pinned by per-session loops.
func (s *bookSession) startEventPump() {
	readyEvents := make(chan domain.SessionEvent)
	failedEvents := make(chan domain.SessionEvent)
	stateEvents := make(chan domain.SessionEvent)

	go func() {
		for ev := range s.orchestrator.Ready() {
			ev := ev
			s.driver.OnSegmentReady(ev.SegmentID)
			readyEvents <- domain.SessionEvent{Type: domain.EventSegmentReady, Ready: &ev}
		}
		close(readyEvents)
	}()

	go func() {
		for ev := range s.orchestrator.Failed() {
			ev := ev
			failedEvents <- domain.SessionEvent{Type: domain.EventSegmentFailed, Failed: &ev}
		}
		close(failedEvents)
	}()

	go func() {
		for snapshot := range s.driver.Updates() {
			snapshot := snapshot
			stateEvents <- domain.SessionEvent{Type: domain.EventStateChanged, Snapshot: &snapshot}
		}
		close(stateEvents)
	}()

	merged := channel_utils.MergeChannels[domain.SessionEvent](readyEvents, failedEvents, stateEvents)

	go func() {
		for ev := range merged {
			s.publish(ev)
		}
	}()
}
