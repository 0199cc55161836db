package services

import (
	"context"
	"errors"
	"testing"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/domain"
)

func startSession(t *testing.T, enricher *countingEnricher, segmentCount int) (inbound.PipelineOrchestratorPort, inbound.PlaybackDriverPort) {
	t.Helper()
	orch := NewSegmentPipelineOrchestrator(noopLogger{}, enricher)
	driver := NewPlaybackDriver(noopLogger{}, orch)

	driver.BeginFetch()
	if driver.State() != domain.PlaybackLoading {
		t.Fatalf("expected loading state, got %s", driver.State())
	}

	err := orch.Start(context.Background(), inbound.StartPipelineParams{
		SessionID: "session-1",
		BookTitle: "Moby Dick",
		Segments:  makeSegments(segmentCount),
	})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return orch, driver
}

func pumpReady(t *testing.T, orch inbound.PipelineOrchestratorPort, driver inbound.PlaybackDriverPort, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		event := waitReady(t, orch)
		driver.OnSegmentReady(event.SegmentID)
	}
}

func TestDriverPlaysThroughToFinished(t *testing.T) {
	enricher := newCountingEnricher()
	orch, driver := startSession(t, enricher, 3)
	pumpReady(t, orch, driver, 3)

	if driver.State() != domain.PlaybackReady {
		t.Fatalf("expected ready state once segment 0 enriched, got %s", driver.State())
	}

	if err := driver.Play(); err != nil {
		t.Fatal("unexpected error:", err)
	}
	snapshot := driver.Current()
	if snapshot.State != domain.PlaybackPlaying || snapshot.Cursor != 0 {
		t.Fatalf("expected playing at cursor 0, got %+v", snapshot)
	}
	if snapshot.AudioRef == "" || snapshot.ImageRef == "" {
		t.Errorf("expected snapshot to carry narration and illustration refs, got %+v", snapshot)
	}

	driver.OnAudioEnded()
	if got := driver.Current(); got.State != domain.PlaybackPlaying || got.Cursor != 1 {
		t.Fatalf("expected playing at cursor 1, got %+v", got)
	}
	driver.OnAudioEnded()
	driver.OnAudioEnded()
	if driver.State() != domain.PlaybackFinished {
		t.Errorf("expected finished after last segment, got %s", driver.State())
	}
}

func TestDriverPauseAndResume(t *testing.T) {
	enricher := newCountingEnricher()
	orch, driver := startSession(t, enricher, 3)
	pumpReady(t, orch, driver, 3)

	if err := driver.Play(); err != nil {
		t.Fatal("unexpected error:", err)
	}
	driver.Pause()
	if driver.State() != domain.PlaybackPaused {
		t.Fatalf("expected paused, got %s", driver.State())
	}
	if err := driver.Play(); err != nil {
		t.Fatal("unexpected error resuming:", err)
	}
	if driver.State() != domain.PlaybackPlaying {
		t.Errorf("expected playing after resume, got %s", driver.State())
	}
}

func TestDriverStallsPausedAtFailedSegment(t *testing.T) {
	enricher := newCountingEnricher(2)
	orch, driver := startSession(t, enricher, 5)
	pumpReady(t, orch, driver, 2)
	failure := waitFailed(t, orch)
	if failure.SegmentID != 2 {
		t.Fatalf("expected failure at segment 2, got %d", failure.SegmentID)
	}

	if err := driver.Play(); err != nil {
		t.Fatal("unexpected error:", err)
	}
	driver.OnAudioEnded()
	if got := driver.Current(); got.State != domain.PlaybackPlaying || got.Cursor != 1 {
		t.Fatalf("expected playing at cursor 1, got %+v", got)
	}

	// Segment 2 never became ready, so playback parks instead of
	// finishing or crashing.
	driver.OnAudioEnded()
	if got := driver.Current(); got.State != domain.PlaybackPaused || got.Cursor != 2 {
		t.Fatalf("expected paused at cursor 2, got %+v", got)
	}
	if err := driver.Play(); !errors.Is(err, domain.ErrSegmentNotReady) {
		t.Errorf("expected segment-not-ready error, got %v", err)
	}
	if driver.State() != domain.PlaybackPaused {
		t.Errorf("expected driver to stay paused, got %s", driver.State())
	}
}

func TestDriverPlayWhileLoadingIsRejected(t *testing.T) {
	enricher := newCountingEnricher()
	_, driver := startSession(t, enricher, 3)

	if err := driver.Play(); !errors.Is(err, domain.ErrSegmentNotReady) {
		t.Errorf("expected segment-not-ready error while loading, got %v", err)
	}
}

func TestDriverFatalErrorReturnsToIdle(t *testing.T) {
	enricher := newCountingEnricher()
	orch, driver := startSession(t, enricher, 3)
	pumpReady(t, orch, driver, 3)

	driver.Fail(domain.ErrBookNotFound)
	if driver.State() != domain.PlaybackIdle {
		t.Errorf("expected idle after fatal error, got %s", driver.State())
	}
}
