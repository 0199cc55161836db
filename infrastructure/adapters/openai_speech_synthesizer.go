package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
	"github.com/rs/zerolog/log"
)

type OpenAiSpeechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

type openAiSpeechSynthesizer struct {
	ContentFetcher
	ttsConfig *config.OpenAiTtsConfig
	backoff   time.Duration
}

func NewOpenAiSpeechSynthesizer(contentFetcher ContentFetcher, ttsConfig *config.OpenAiTtsConfig) outbound.SpeechSynthesizerPort {
	return &openAiSpeechSynthesizer{
		ContentFetcher: contentFetcher,
		ttsConfig:      ttsConfig,
		backoff:        backoffBase,
	}
}

// Synthesize narrates the text. Only rate-limit rejections are retried;
// any other failure is permanent for this invocation.
func (a *openAiSpeechSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var audio []byte

	err := withRetry(ctx, MaxAttempts, a.backoff, func(err error) bool {
		return errors.Is(err, domain.ErrRateLimited)
	}, func() error {
		req, err := a.getRequest(ctx, text)
		if err != nil {
			log.Error().Err(err).Str("action", "Fetching Audio").Msg("Failed to construct the HTTP request for speech synthesis")
			return err
		}
		audio, err = a.FetchContent(req)
		return err
	})
	if err != nil {
		return nil, err
	}

	return audio, nil
}

func (a *openAiSpeechSynthesizer) getRequest(ctx context.Context, text string) (*http.Request, error) {
	reqBody := OpenAiSpeechRequest{
		Model: a.ttsConfig.Model,
		Voice: a.ttsConfig.Voice,
		Input: text,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		log.Error().Err(err).Str("action", "Marshalling JSON").Msg("Failed to marshal the request body for speech synthesis")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.ttsConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Error().Err(err).Str("action", "Creating HTTP Request").Str("URL", a.ttsConfig.ApiUrl).Msg("Failed to create the HTTP POST request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+a.ttsConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	return req, nil
}
