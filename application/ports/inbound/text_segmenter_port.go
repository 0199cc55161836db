package inbound

import "github.com/a1j9o94/visual-audio-books/domain"

// TextSegmenterPort partitions raw book text into bounded segments.
type TextSegmenterPort interface {
	// Preprocess strips the Project Gutenberg header when a recognized
	// start-of-content marker is present; otherwise it returns the text
	// unchanged.
	Preprocess(fullText string) string

	// Segment groups the whitespace-split words of text into windows of
	// wordsPerSegment words. The last segment may be shorter. Empty or
	// whitespace-only text yields no segments.
	Segment(text string, wordsPerSegment int) []domain.TextSegment
}
