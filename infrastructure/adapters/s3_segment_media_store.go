package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

type s3SegmentMediaStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3SegmentMediaStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.MediaStorePort {
	return &s3SegmentMediaStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

// Save uploads the media bytes and returns the object URL used as the
// segment's audioRef or imageRef.
func (s *s3SegmentMediaStore) Save(ctx context.Context, params outbound.SaveMediaParams) (string, error) {
	itemPath := s.getS3ItemPath(params)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.MediaBucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(params.Content),
		ContentLength: aws.Int64(int64(len(params.Content))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.MediaBucketName).
			Str("key", itemPath).
			Msg("Failed to upload object to S3")
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Config.MediaBucketName, s.s3Config.Region, itemPath)
	log.Debug().
		Str("s3Url", s3Url).
		Msg("Successfully uploaded object to S3")

	return s3Url, nil
}

func (s *s3SegmentMediaStore) getS3ItemPath(params outbound.SaveMediaParams) string {
	return fmt.Sprintf("book/%s/%s/segment_%d", SanitizeBookKey(params.BookTitle), params.Kind, params.SegmentID)
}
