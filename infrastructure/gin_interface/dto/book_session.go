package dto

import "github.com/a1j9o94/visual-audio-books/domain"

type CreateBookRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateBookResponse struct {
	SessionID    string `json:"session_id"`
	BookTitle    string `json:"book_title"`
	SegmentCount int    `json:"segment_count"`
}

// SessionStateResponse is returned by every playback control endpoint.
type SessionStateResponse struct {
	SessionID string                  `json:"session_id"`
	Playback  domain.PlaybackSnapshot `json:"playback"`
}
