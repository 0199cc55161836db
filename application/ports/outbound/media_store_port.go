package outbound

import "context"

type MediaKind string

const (
	AudioMediaKind MediaKind = "audio"
	ImageMediaKind MediaKind = "image"
)

type SaveMediaParams struct {
	BookTitle string
	SegmentID int
	Kind      MediaKind
	Content   []byte
}

// MediaStorePort uploads synthesized media and returns an opaque URL
// used as the segment's audioRef or imageRef.
type MediaStorePort interface {
	Save(ctx context.Context, params SaveMediaParams) (string, error)
}
