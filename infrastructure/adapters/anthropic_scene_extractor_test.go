package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
)

func newTestSceneExtractor(url string) *anthropicSceneExtractor {
	return &anthropicSceneExtractor{
		logger: testLogger{},
		anthropicConfig: &config.AnthropicConfig{
			ApiUrl:    url,
			ApiKey:    "test-key",
			Model:     "test-model",
			MaxTokens: 1000,
		},
		backoff: time.Millisecond,
	}
}

func writeSseDelta(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	chunk := anthropicStreamChunk{Type: "content_block_delta"}
	chunk.Delta.Type = "text_delta"
	chunk.Delta.Text = text
	payload, err := json.Marshal(chunk)
	if err != nil {
		t.Fatal("failed to marshal chunk:", err)
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
}

func sceneStreamHandler(t *testing.T, deltas ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("response writer does not support flushing")
		}
		for _, delta := range deltas {
			writeSseDelta(t, w, delta)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: {\"type\":\"message_stop\"}\n\n")
		flusher.Flush()
	}
}

func TestSceneExtractorParsesFencedResponse(t *testing.T) {
	// The payload arrives in pieces, wrapped in a Markdown fence the
	// extractor must strip before parsing.
	server := httptest.NewServer(sceneStreamHandler(t,
		"```json\n{\"shots\":[{\"shotNumber\":1,\"characters\":[\"Ahab\"],",
		"\"description\":\"Deck at dawn\",\"tone\":\"foreboding\"}],",
		"\"newCharacters\":[{\"name\":\"Ahab\",\"description\":\"Captain\"}]}\n```",
	))
	defer server.Close()

	breakdown, err := newTestSceneExtractor(server.URL).Extract(context.Background(), outbound.ExtractScenesRequest{
		Text:      "Call me Ishmael.",
		BookTitle: "Moby Dick",
	})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if len(breakdown.Shots) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(breakdown.Shots))
	}
	shot := breakdown.Shots[0]
	if shot.ShotNumber != 1 || shot.Description != "Deck at dawn" || shot.Tone != "foreboding" {
		t.Errorf("unexpected shot: %+v", shot)
	}
	if len(breakdown.NewCharacters) != 1 || breakdown.NewCharacters[0].Name != "Ahab" {
		t.Errorf("unexpected new characters: %v", breakdown.NewCharacters)
	}
}

func TestSceneExtractorRetriesMalformedResponse(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			sceneStreamHandler(t, "this is not JSON at all").ServeHTTP(w, r)
			return
		}
		sceneStreamHandler(t, "{\"shots\":[{\"shotNumber\":1,\"description\":\"Deck\",\"tone\":\"calm\"}],\"newCharacters\":[]}").ServeHTTP(w, r)
	}))
	defer server.Close()

	breakdown, err := newTestSceneExtractor(server.URL).Extract(context.Background(), outbound.ExtractScenesRequest{
		Text:      "Call me Ishmael.",
		BookTitle: "Moby Dick",
	})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(breakdown.Shots) != 1 {
		t.Errorf("expected breakdown from the retried attempt, got %+v", breakdown)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestSceneExtractorFailsAfterExhaustedRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		sceneStreamHandler(t, "never valid JSON").ServeHTTP(w, r)
	}))
	defer server.Close()

	_, err := newTestSceneExtractor(server.URL).Extract(context.Background(), outbound.ExtractScenesRequest{
		Text:      "Call me Ishmael.",
		BookTitle: "Moby Dick",
	})
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("expected malformed response error, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != MaxAttempts {
		t.Errorf("expected %d attempts, got %d", MaxAttempts, got)
	}
}

func TestCleanStructuredResponse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"shots\":[]}\n```", "{\"shots\":[]}"},
		{"```\n{\"shots\":[]}\n```", "{\"shots\":[]}"},
		{"{\"shots\":[]}", "{\"shots\":[]}"},
		{"  {\"shots\":[]}  ", "{\"shots\":[]}"},
	}
	for _, c := range cases {
		if got := cleanStructuredResponse(c.in); got != c.want {
			t.Errorf("cleanStructuredResponse(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
