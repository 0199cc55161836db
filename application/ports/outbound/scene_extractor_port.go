package outbound

import (
	"context"

	"github.com/a1j9o94/visual-audio-books/domain"
)

type ExtractScenesRequest struct {
	Text            string
	BookTitle       string
	KnownCharacters []domain.Character
}

// SceneExtractorPort breaks a segment of book text into cinematic shots
// and reports any characters introduced in it. Implementations must
// tolerate formatting wrappers around the structured response and strip
// them before parsing; a response that still cannot be parsed fails with
// domain.ErrMalformedResponse.
type SceneExtractorPort interface {
	Extract(ctx context.Context, req ExtractScenesRequest) (domain.SceneBreakdown, error)
}
