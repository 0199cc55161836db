package inbound

import (
	"context"

	"github.com/a1j9o94/visual-audio-books/domain"
)

type CreateSessionParams struct {
	BookTitle string
}

type SessionInfo struct {
	SessionID    string
	BookTitle    string
	SegmentCount int
}

// BookSessionManagerPort owns the registry of playback sessions. Each
// session pairs one pipeline orchestrator with one playback driver and
// fans its events out to any number of subscribers.
type BookSessionManagerPort interface {
	// CreateSession fetches and segments the requested book, starts the
	// enrichment pipeline and registers a new session for it. It fails
	// with domain.ErrBookNotFound when no public-domain edition exists.
	CreateSession(ctx context.Context, params CreateSessionParams) (SessionInfo, error)

	// Play, Pause and Advance drive the session's playback state machine
	// and return the resulting snapshot. Advance reports that narration
	// audio for the current segment finished on the client. All three
	// fail with domain.ErrSessionNotFound for unknown ids; Play
	// additionally surfaces domain.ErrSegmentNotReady.
	Play(sessionID string) (domain.PlaybackSnapshot, error)
	Pause(sessionID string) (domain.PlaybackSnapshot, error)
	Advance(sessionID string) (domain.PlaybackSnapshot, error)

	// Snapshot returns the session's current presentation state.
	Snapshot(sessionID string) (domain.PlaybackSnapshot, error)

	// Subscribe registers an event listener for the session. The
	// returned cancel func detaches the listener and closes the channel.
	Subscribe(sessionID string) (<-chan domain.SessionEvent, func(), error)
}
