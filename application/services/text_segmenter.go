package services

import (
	"strings"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/domain"
)

// Start-of-content markers checked in priority order. Project Gutenberg
// editions are not consistent about the wording.
var gutenbergStartMarkers = []string{
	"*** START OF THE PROJECT GUTENBERG EBOOK",
	"*** START OF THIS PROJECT GUTENBERG EBOOK",
}

type textSegmenter struct {
	logger outbound.LoggerPort
}

func NewTextSegmenter(logger outbound.LoggerPort) inbound.TextSegmenterPort {
	return &textSegmenter{
		logger: logger,
	}
}

func (t *textSegmenter) Preprocess(fullText string) string {
	for _, marker := range gutenbergStartMarkers {
		markerIndex := strings.Index(fullText, marker)
		if markerIndex == -1 {
			continue
		}
		lineBreak := strings.Index(fullText[markerIndex:], "\n")
		if lineBreak == -1 {
			continue
		}
		return fullText[markerIndex+lineBreak+1:]
	}

	t.logger.Warn("Could not find the start of the book, using full text")
	return fullText
}

// Segment windows the whitespace-split words of text into segments of
// wordsPerSegment words. Empty or whitespace-only text yields no
// segments, not a single empty one.
func (t *textSegmenter) Segment(text string, wordsPerSegment int) []domain.TextSegment {
	words := strings.Fields(text)
	segments := make([]domain.TextSegment, 0, len(words)/wordsPerSegment+1)
	currentIndex := 0

	for i := 0; i < len(words); i += wordsPerSegment {
		end := i + wordsPerSegment
		if end > len(words) {
			end = len(words)
		}
		segmentText := strings.Join(words[i:end], " ")
		segments = append(segments, domain.TextSegment{
			ID:         len(segments),
			Text:       segmentText,
			StartIndex: currentIndex,
			EndIndex:   currentIndex + len(segmentText),
		})
		// +1 for the joining space. Whitespace runs were collapsed, so
		// this is a position proxy, not a true source offset.
		currentIndex += len(segmentText) + 1
	}

	return segments
}
