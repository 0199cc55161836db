package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
)

func newTestBookFetcher(searchUrl, textUrl string) *openLibraryBookFetcher {
	return &openLibraryBookFetcher{
		ContentFetcher: NewContentFetcher(testLogger{}),
		logger:         testLogger{},
		openLibraryConfig: &config.OpenLibraryConfig{
			SearchUrl:        searchUrl,
			GutenbergTextUrl: textUrl,
		},
	}
}

func TestFetchBookTextHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Moby Dick" {
			t.Errorf("expected search query %q, got %q", "Moby Dick", got)
		}
		w.Write([]byte(`{"docs":[{"title":"Moby Dick","id_project_gutenberg":["2701"]}]}`))
	})
	mux.HandleFunc("/cache/epub/2701/pg2701.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Call me Ishmael."))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := newTestBookFetcher(server.URL+"/search.json", server.URL+"/cache/epub/%s/pg%s.txt")

	text, err := fetcher.FetchBookText(context.Background(), "Moby Dick")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if text != "Call me Ishmael." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestFetchBookTextNoSearchResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[]}`))
	}))
	defer server.Close()

	fetcher := newTestBookFetcher(server.URL, server.URL+"/%s/%s")

	_, err := fetcher.FetchBookText(context.Background(), "A Book Nobody Wrote")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected book not found error, got %v", err)
	}
}

func TestFetchBookTextNoGutenbergEdition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[{"title":"Some Modern Novel"}]}`))
	}))
	defer server.Close()

	fetcher := newTestBookFetcher(server.URL, server.URL+"/%s/%s")

	_, err := fetcher.FetchBookText(context.Background(), "Some Modern Novel")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected book not found error, got %v", err)
	}
}

func TestFetchBookTextEmptyEdition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "search") {
			w.Write([]byte(`{"docs":[{"title":"Moby Dick","id_project_gutenberg":["2701"]}]}`))
			return
		}
		// The edition download succeeds but carries no content.
	}))
	defer server.Close()

	fetcher := newTestBookFetcher(server.URL+"/search.json", server.URL+"/edition/%s/%s")

	_, err := fetcher.FetchBookText(context.Background(), "Moby Dick")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected book not found error, got %v", err)
	}
}
