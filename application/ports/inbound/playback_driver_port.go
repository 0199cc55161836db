package inbound

import "github.com/a1j9o94/visual-audio-books/domain"

// PlaybackDriverPort is the state machine that consumes the enriched
// sequence and drives sequential audio+scene+image presentation.
//
// States: Idle, Loading, Ready, Playing, Paused, Finished. Every
// transition swaps the full narration/illustration/scene snapshot
// atomically relative to readers of Current.
type PlaybackDriverPort interface {
	// BeginFetch marks a book-fetch request: Idle -> Loading.
	BeginFetch()

	// Play starts or resumes playback. It fails with
	// domain.ErrSegmentNotReady while the segment at the cursor has no
	// enriched entry yet.
	Play() error

	// Pause suspends playback: Playing -> Paused.
	Pause()

	// OnAudioEnded advances past the segment whose narration finished:
	// to Playing at the next cursor when it is ready, Paused when it is
	// not, or Finished when the book is exhausted.
	OnAudioEnded()

	// OnSegmentReady tells the driver that enrichment for a segment
	// completed. Loading becomes Ready once segment 0 is enriched.
	OnSegmentReady(id int)

	// Fail aborts the session on a fatal error and returns to Idle.
	Fail(err error)

	State() domain.PlaybackState
	Current() domain.PlaybackSnapshot

	// Updates publishes a snapshot on every transition.
	Updates() <-chan domain.PlaybackSnapshot
}
