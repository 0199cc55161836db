package adapters

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
)

type stabilityImageSynthesizer struct {
	ContentFetcher
	logger          outbound.LoggerPort
	stabilityConfig *config.StabilityConfig
	backoff         time.Duration
}

func NewStabilityImageSynthesizer(contentFetcher ContentFetcher, stabilityConfig *config.StabilityConfig,
	logger outbound.LoggerPort) outbound.ImageSynthesizerPort {
	return &stabilityImageSynthesizer{
		ContentFetcher:  contentFetcher,
		logger:          logger,
		stabilityConfig: stabilityConfig,
		backoff:         backoffBase,
	}
}

// Synthesize generates an illustration for the prompt. Any non-success
// response status is retried up to the fixed attempt budget, the first
// attempt included.
func (i *stabilityImageSynthesizer) Synthesize(ctx context.Context, prompt string) ([]byte, error) {
	var image []byte

	err := withRetry(ctx, MaxAttempts, i.backoff, domain.IsRetryable, func() error {
		req, err := i.getRequest(ctx, prompt)
		if err != nil {
			i.logger.Error(err, "Failed to create the HTTP request")
			return err
		}
		image, err = i.FetchContent(req)
		return err
	})
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (i *stabilityImageSynthesizer) getRequest(ctx context.Context, prompt string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("prompt", prompt); err != nil {
		i.logger.Error(err, "Failed to write the prompt field")
		return nil, err
	}
	if err := writer.WriteField("output_format", i.stabilityConfig.OutputFormat); err != nil {
		i.logger.Error(err, "Failed to write the output format field")
		return nil, err
	}
	if err := writer.Close(); err != nil {
		i.logger.Error(err, "Failed to finalize the multipart body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", i.stabilityConfig.ApiUrl, &body)
	if err != nil {
		i.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+i.stabilityConfig.ApiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "image/*")

	return req, nil
}
