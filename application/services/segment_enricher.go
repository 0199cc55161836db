package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/domain"
)

type segmentEnricher struct {
	logger            outbound.LoggerPort
	workerPool        outbound.TaskDispatcher
	speechSynthesizer outbound.SpeechSynthesizerPort
	sceneExtractor    outbound.SceneExtractorPort
	imageSynthesizer  outbound.ImageSynthesizerPort
	mediaStore        outbound.MediaStorePort
	characterLedger   inbound.CharacterLedgerPort
	sessionLog        outbound.SessionLogPort
}

func NewSegmentEnricher(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	speechSynthesizer outbound.SpeechSynthesizerPort, sceneExtractor outbound.SceneExtractorPort,
	imageSynthesizer outbound.ImageSynthesizerPort, mediaStore outbound.MediaStorePort,
	characterLedger inbound.CharacterLedgerPort, sessionLog outbound.SessionLogPort) inbound.SegmentEnricherPort {
	return &segmentEnricher{
		logger:            logger,
		workerPool:        workerPool,
		speechSynthesizer: speechSynthesizer,
		sceneExtractor:    sceneExtractor,
		imageSynthesizer:  imageSynthesizer,
		mediaStore:        mediaStore,
		characterLedger:   characterLedger,
		sessionLog:        sessionLog,
	}
}

type audioResult struct {
	ref string
	err error
}

// Enrich runs speech synthesis concurrently with the scene extraction +
// image synthesis chain. Image synthesis only starts once scene
// extraction resolved, because the prompt derives from the first shot.
func (s *segmentEnricher) Enrich(ctx context.Context, params inbound.EnrichSegmentParams) (domain.EnrichedSegment, error) {
	audioCh := make(chan audioResult, 1)

	err := s.workerPool.Submit(func() {
		ref, err := s.synthesizeNarration(ctx, params)
		audioCh <- audioResult{ref: ref, err: err}
	})
	if err != nil {
		return domain.EnrichedSegment{}, err
	}

	breakdown, imageRef, sceneErr := s.extractAndIllustrate(ctx, params)

	audio := <-audioCh
	if sceneErr != nil {
		return domain.EnrichedSegment{}, sceneErr
	}
	if audio.err != nil {
		return domain.EnrichedSegment{}, audio.err
	}

	enriched := domain.EnrichedSegment{
		TextSegment:   params.Segment,
		AudioRef:      audio.ref,
		Scenes:        breakdown.Shots,
		NewCharacters: breakdown.NewCharacters,
		ImageRef:      imageRef,
	}

	s.persistLog(ctx, params.BookTitle, "segment_enriched", enriched)

	return enriched, nil
}

func (s *segmentEnricher) synthesizeNarration(ctx context.Context, params inbound.EnrichSegmentParams) (string, error) {
	content, err := s.speechSynthesizer.Synthesize(ctx, params.Segment.Text)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to synthesize narration", map[string]interface{}{
			"segment_id": params.Segment.ID,
		})
		return "", err
	}

	return s.mediaStore.Save(ctx, outbound.SaveMediaParams{
		BookTitle: params.BookTitle,
		SegmentID: params.Segment.ID,
		Kind:      outbound.AudioMediaKind,
		Content:   content,
	})
}

func (s *segmentEnricher) extractAndIllustrate(ctx context.Context, params inbound.EnrichSegmentParams) (domain.SceneBreakdown, string, error) {
	known, err := s.characterLedger.Get(ctx, params.BookTitle)
	if err != nil {
		return domain.SceneBreakdown{}, "", err
	}

	breakdown, err := s.sceneExtractor.Extract(ctx, outbound.ExtractScenesRequest{
		Text:            params.Segment.Text,
		BookTitle:       params.BookTitle,
		KnownCharacters: known,
	})
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to extract scenes", map[string]interface{}{
			"segment_id": params.Segment.ID,
		})
		return domain.SceneBreakdown{}, "", err
	}
	if len(breakdown.Shots) == 0 {
		return domain.SceneBreakdown{}, "", fmt.Errorf("scene breakdown has no shots: %w", domain.ErrMalformedResponse)
	}

	// Merge before the segment is final so extraction for the next
	// segment sees these characters.
	if err := s.characterLedger.Merge(ctx, params.BookTitle, breakdown.NewCharacters); err != nil {
		return domain.SceneBreakdown{}, "", err
	}

	content, err := s.imageSynthesizer.Synthesize(ctx, BuildImagePrompt(breakdown.Shots[0]))
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to synthesize image", map[string]interface{}{
			"segment_id": params.Segment.ID,
		})
		return domain.SceneBreakdown{}, "", err
	}

	imageRef, err := s.mediaStore.Save(ctx, outbound.SaveMediaParams{
		BookTitle: params.BookTitle,
		SegmentID: params.Segment.ID,
		Kind:      outbound.ImageMediaKind,
		Content:   content,
	})
	if err != nil {
		return domain.SceneBreakdown{}, "", err
	}

	return breakdown, imageRef, nil
}

func (s *segmentEnricher) persistLog(ctx context.Context, bookTitle string, logType string, data interface{}) {
	err := s.workerPool.Submit(func() {
		if err := s.sessionLog.Persist(ctx, bookTitle, logType, data); err != nil {
			s.logger.ErrorWithFields(err, "Failed to persist session log", map[string]interface{}{
				"book_title": bookTitle,
				"log_type":   logType,
			})
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit log task to worker pool")
	}
}

// BuildImagePrompt turns the first shot of a segment's breakdown into
// an illustration prompt.
func BuildImagePrompt(shot domain.Shot) string {
	return fmt.Sprintf("Create a cinematic image of the following scene: %s. "+
		"The scene should convey a %s atmosphere. "+
		"Characters present: %s. "+
		"Style: Photorealistic, detailed, cinematic lighting.",
		shot.Description, shot.Tone, strings.Join(shot.Characters, ", "))
}
