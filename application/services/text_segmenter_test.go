package services

import (
	"strings"
	"testing"
)

func TestSegmentWordCounts(t *testing.T) {
	words := make([]string, 120)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	segmenter := NewTextSegmenter(noopLogger{})
	segments := segmenter.Segment(text, 50)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i, want := range []int{50, 50, 20} {
		got := len(strings.Fields(segments[i].Text))
		if got != want {
			t.Errorf("segment %d: expected %d words, got %d", i, want, got)
		}
	}
}

func TestSegmentRejoinReproducesNormalizedText(t *testing.T) {
	text := "The  quick\nbrown\tfox   jumps over\r\nthe lazy dog and keeps running"

	segmenter := NewTextSegmenter(noopLogger{})
	segments := segmenter.Segment(text, 3)

	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Text
	}
	rejoined := strings.Join(parts, " ")
	normalized := strings.Join(strings.Fields(text), " ")

	if rejoined != normalized {
		t.Errorf("rejoined text %q does not match normalized input %q", rejoined, normalized)
	}
}

func TestSegmentIDsAndOffsets(t *testing.T) {
	segmenter := NewTextSegmenter(noopLogger{})
	segments := segmenter.Segment("one two three four five six seven", 2)

	for i, s := range segments {
		if s.ID != i {
			t.Errorf("segment %d has id %d", i, s.ID)
		}
		if s.EndIndex <= s.StartIndex {
			t.Errorf("segment %d has end %d <= start %d", i, s.EndIndex, s.StartIndex)
		}
		if i > 0 {
			prev := segments[i-1]
			if s.StartIndex != prev.EndIndex+1 {
				t.Errorf("segment %d starts at %d, expected %d", i, s.StartIndex, prev.EndIndex+1)
			}
		}
	}
}

func TestSegmentEmptyText(t *testing.T) {
	segmenter := NewTextSegmenter(noopLogger{})
	if segments := segmenter.Segment("", 50); len(segments) != 0 {
		t.Errorf("expected no segments for empty text, got %d", len(segments))
	}
	if segments := segmenter.Segment("  \n\t ", 50); len(segments) != 0 {
		t.Errorf("expected no segments for whitespace-only text, got %d", len(segments))
	}
}

func TestPreprocessStripsGutenbergHeader(t *testing.T) {
	segmenter := NewTextSegmenter(noopLogger{})

	text := "Title page junk\n*** START OF THE PROJECT GUTENBERG EBOOK\nCHAPTER 1..."
	if got := segmenter.Preprocess(text); got != "CHAPTER 1..." {
		t.Errorf("expected %q, got %q", "CHAPTER 1...", got)
	}

	alt := "*** START OF THIS PROJECT GUTENBERG EBOOK MOBY DICK ***\nCall me Ishmael."
	if got := segmenter.Preprocess(alt); got != "Call me Ishmael." {
		t.Errorf("expected %q, got %q", "Call me Ishmael.", got)
	}
}

func TestPreprocessWithoutMarkerReturnsInput(t *testing.T) {
	segmenter := NewTextSegmenter(noopLogger{})

	text := "No marker anywhere in this text.\nJust a story."
	if got := segmenter.Preprocess(text); got != text {
		t.Errorf("expected input unchanged, got %q", got)
	}
}
