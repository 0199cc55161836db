package domain

// TextSegment is one bounded chunk of book text. Segments are contiguous
// and non-overlapping, with ID equal to their position in the sequence.
// StartIndex tracks position in the whitespace-collapsed text, not the
// original file, so consumers treat it as a monotonic proxy only.
type TextSegment struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

// Shot is one cinematic beat within a segment's scene breakdown.
type Shot struct {
	ShotNumber  int      `json:"shotNumber"`
	Characters  []string `json:"characters"`
	Description string   `json:"description"`
	Dialogue    string   `json:"dialogue,omitempty"`
	Tone        string   `json:"tone"`
}

type Character struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SceneBreakdown is the result of scene extraction for one segment.
type SceneBreakdown struct {
	Shots         []Shot      `json:"shots"`
	NewCharacters []Character `json:"newCharacters"`
}

// EnrichedSegment is a TextSegment with all three enrichment results
// attached. It is created only once audio, scenes and image all
// succeeded, and is read-only afterwards.
type EnrichedSegment struct {
	TextSegment
	AudioRef      string      `json:"audioRef"`
	Scenes        []Shot      `json:"scenes"`
	NewCharacters []Character `json:"newCharacters"`
	ImageRef      string      `json:"imageRef"`
}

// PlaybackState enumerates the playback driver states.
type PlaybackState string

const (
	PlaybackIdle     PlaybackState = "idle"
	PlaybackLoading  PlaybackState = "loading"
	PlaybackReady    PlaybackState = "ready"
	PlaybackPlaying  PlaybackState = "playing"
	PlaybackPaused   PlaybackState = "paused"
	PlaybackFinished PlaybackState = "finished"
)

// PlaybackSnapshot is an atomic view of what should be on screen: the
// narration audio, the illustration and the scene text for the segment
// at Cursor. All fields swap together on every transition.
type PlaybackSnapshot struct {
	State    PlaybackState `json:"state"`
	Cursor   int           `json:"cursor"`
	AudioRef string        `json:"audioRef,omitempty"`
	ImageRef string        `json:"imageRef,omitempty"`
	Text     string        `json:"text,omitempty"`
	Scenes   []Shot        `json:"scenes,omitempty"`
}

// SegmentReadyEvent is published when enrichment for a segment completes.
type SegmentReadyEvent struct {
	SessionID string `json:"session_id"`
	SegmentID int    `json:"segment_id"`
	AudioRef  string `json:"audioRef"`
	ImageRef  string `json:"imageRef"`
}

// SegmentFailedEvent is published when a segment exhausts its retry
// budget and will never become ready.
type SegmentFailedEvent struct {
	SessionID string `json:"session_id"`
	SegmentID int    `json:"segment_id"`
	Message   string `json:"message"`
}

const (
	EventSegmentReady  = "segment_ready"
	EventSegmentFailed = "segment_failed"
	EventStateChanged  = "state_changed"
)

// SessionEvent is the tagged union streamed to session subscribers.
// Exactly one of the payload fields is set, according to Type.
type SessionEvent struct {
	Type     string              `json:"type"`
	Ready    *SegmentReadyEvent  `json:"ready,omitempty"`
	Failed   *SegmentFailedEvent `json:"failed,omitempty"`
	Snapshot *PlaybackSnapshot   `json:"snapshot,omitempty"`
}
