package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
)

func newTestImageSynthesizer(url string) *stabilityImageSynthesizer {
	return &stabilityImageSynthesizer{
		ContentFetcher: NewContentFetcher(testLogger{}),
		logger:         testLogger{},
		stabilityConfig: &config.StabilityConfig{
			ApiUrl:       url,
			ApiKey:       "test-key",
			OutputFormat: "png",
		},
		backoff: time.Millisecond,
	}
}

func TestImageSynthesizerRetriesNonSuccess(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	image, err := newTestImageSynthesizer(server.URL).Synthesize(context.Background(), "a whale at dawn")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if string(image) != "png-bytes" {
		t.Errorf("expected image bytes, got %q", image)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestImageSynthesizerExhaustsAttemptBudget(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestImageSynthesizer(server.URL).Synthesize(context.Background(), "a whale at dawn")
	if !errors.Is(err, domain.ErrNonSuccessStatus) {
		t.Errorf("expected non-success error after exhausted retries, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != MaxAttempts {
		t.Errorf("expected exactly %d attempts, got %d", MaxAttempts, got)
	}
}

func TestImageSynthesizerSendsPromptField(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Error("failed to parse multipart form:", err)
		}
		prompt = r.FormValue("prompt")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	_, err := newTestImageSynthesizer(server.URL).Synthesize(context.Background(), "a whale at dawn")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if prompt != "a whale at dawn" {
		t.Errorf("expected prompt field, got %q", prompt)
	}
}
