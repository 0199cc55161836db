package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
	"github.com/donovanhide/eventsource"
)

const sceneExtractorSystemPrompt = "You are a skilled film director and screenwriter, adept at " +
	"creating vivid, cinematic scene descriptions. Always respond with valid JSON without any " +
	"Markdown formatting."

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Stream    bool               `json:"stream"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicStreamChunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

type anthropicSceneExtractor struct {
	logger          outbound.LoggerPort
	anthropicConfig *config.AnthropicConfig
	backoff         time.Duration
}

func NewAnthropicSceneExtractor(logger outbound.LoggerPort, anthropicConfig *config.AnthropicConfig) outbound.SceneExtractorPort {
	return &anthropicSceneExtractor{
		logger:          logger,
		anthropicConfig: anthropicConfig,
		backoff:         backoffBase,
	}
}

// Extract streams the storyboard response, strips any Markdown fencing
// the model wrapped it in, and parses the shot list plus new
// characters. Each attempt covers the full stream; any failure is
// retried within the attempt budget.
func (a *anthropicSceneExtractor) Extract(ctx context.Context, req outbound.ExtractScenesRequest) (domain.SceneBreakdown, error) {
	var breakdown domain.SceneBreakdown

	err := withRetry(ctx, MaxAttempts, a.backoff, func(error) bool {
		return true
	}, func() error {
		raw, err := a.streamResponse(ctx, req)
		if err != nil {
			return err
		}
		parsed, err := a.parseBreakdown(raw)
		if err != nil {
			return err
		}
		breakdown = parsed
		return nil
	})
	if err != nil {
		return domain.SceneBreakdown{}, err
	}

	return breakdown, nil
}

func (a *anthropicSceneExtractor) streamResponse(ctx context.Context, req outbound.ExtractScenesRequest) (string, error) {
	httpReq, err := a.createRequest(ctx, req)
	if err != nil {
		a.logger.Error(err, "Failed to create HTTP request for scene extraction stream")
		return "", err
	}

	stream, err := eventsource.SubscribeWithRequest("", httpReq)
	if err != nil {
		a.logger.Error(err, "Failed to subscribe to scene extraction stream")
		return "", err
	}
	defer stream.Close()

	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev := <-stream.Events:
			var chunk anthropicStreamChunk
			if err := json.Unmarshal([]byte(ev.Data()), &chunk); err != nil {
				a.logger.Error(err, "Failed to unmarshal stream event data")
				return "", fmt.Errorf("stream chunk: %w", domain.ErrMalformedResponse)
			}
			switch chunk.Type {
			case "content_block_delta":
				builder.WriteString(chunk.Delta.Text)
			case "message_stop":
				return builder.String(), nil
			}
		case err := <-stream.Errors:
			if err == io.EOF {
				return builder.String(), nil
			}
			a.logger.Error(err, "Error occurred during scene extraction streaming")
			return "", err
		}
	}
}

func (a *anthropicSceneExtractor) parseBreakdown(raw string) (domain.SceneBreakdown, error) {
	cleaned := cleanStructuredResponse(raw)

	var breakdown domain.SceneBreakdown
	if err := json.Unmarshal([]byte(cleaned), &breakdown); err != nil {
		a.logger.ErrorWithFields(err, "Failed to parse scene breakdown", map[string]interface{}{
			"response": raw,
		})
		return domain.SceneBreakdown{}, fmt.Errorf("scene breakdown: %w", domain.ErrMalformedResponse)
	}

	return breakdown, nil
}

func (a *anthropicSceneExtractor) createRequest(ctx context.Context, req outbound.ExtractScenesRequest) (*http.Request, error) {
	characterInfo := make([]string, 0, len(req.KnownCharacters))
	for _, c := range req.KnownCharacters {
		characterInfo = append(characterInfo, c.Name+": "+c.Description)
	}

	prompt := fmt.Sprintf("As a visionary film director, create a detailed storyboard for the "+
		"following scene from %q. Break it down into cinematic shots, capturing the tone, "+
		"atmosphere, and character nuances.\n\n"+
		"Known characters in the book:\n%s\n\n"+
		"Text to analyze:\n%s\n\n"+
		"Respond with a JSON object containing a 'shots' array (each shot has shotNumber, "+
		"characters, description, dialogue, tone) and a 'newCharacters' array of characters "+
		"introduced in this scene (each with name and description). Do not include any Markdown "+
		"formatting in your response.",
		req.BookTitle, strings.Join(characterInfo, "\n"), req.Text)

	payload := anthropicRequest{
		Model:     a.anthropicConfig.Model,
		MaxTokens: a.anthropicConfig.MaxTokens,
		Stream:    true,
		System:    sceneExtractorSystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", a.anthropicConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		a.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	httpReq.Header.Set("x-api-key", a.anthropicConfig.ApiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}

// cleanStructuredResponse strips Markdown code fences the model may
// have wrapped around the JSON payload.
func cleanStructuredResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
