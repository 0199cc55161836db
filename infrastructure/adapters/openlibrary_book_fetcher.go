package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
)

type openLibrarySearchResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title        string   `json:"title"`
	GutenbergIDs []string `json:"id_project_gutenberg"`
}

type openLibraryBookFetcher struct {
	ContentFetcher
	logger            outbound.LoggerPort
	openLibraryConfig *config.OpenLibraryConfig
}

func NewOpenLibraryBookFetcher(contentFetcher ContentFetcher, openLibraryConfig *config.OpenLibraryConfig,
	logger outbound.LoggerPort) outbound.BookFetcherPort {
	return &openLibraryBookFetcher{
		ContentFetcher:    contentFetcher,
		logger:            logger,
		openLibraryConfig: openLibraryConfig,
	}
}

// FetchBookText searches OpenLibrary for the title and downloads the
// plain-text Project Gutenberg edition of the first match. A missing
// match, a match without a Gutenberg id, or an empty download all fail
// with domain.ErrBookNotFound.
func (f *openLibraryBookFetcher) FetchBookText(ctx context.Context, title string) (string, error) {
	doc, err := f.searchBook(ctx, title)
	if err != nil {
		return "", err
	}

	if len(doc.GutenbergIDs) == 0 {
		f.logger.WarnWithFields("No Project Gutenberg id for book", map[string]interface{}{
			"title": title,
		})
		return "", fmt.Errorf("no gutenberg edition for %q: %w", title, domain.ErrBookNotFound)
	}

	gutenbergID := doc.GutenbergIDs[0]
	textUrl := fmt.Sprintf(f.openLibraryConfig.GutenbergTextUrl, gutenbergID, gutenbergID)

	req, err := http.NewRequestWithContext(ctx, "GET", textUrl, nil)
	if err != nil {
		f.logger.Error(err, "Failed to create the edition request")
		return "", err
	}

	text, err := f.FetchContent(req)
	if err != nil {
		return "", err
	}
	if len(text) == 0 {
		return "", fmt.Errorf("empty edition text for %q: %w", title, domain.ErrBookNotFound)
	}

	return string(text), nil
}

func (f *openLibraryBookFetcher) searchBook(ctx context.Context, title string) (openLibraryDoc, error) {
	searchUrl := f.openLibraryConfig.SearchUrl + "?q=" + url.QueryEscape(title)

	req, err := http.NewRequestWithContext(ctx, "GET", searchUrl, nil)
	if err != nil {
		f.logger.Error(err, "Failed to create the search request")
		return openLibraryDoc{}, err
	}

	payload, err := f.FetchContent(req)
	if err != nil {
		return openLibraryDoc{}, err
	}

	var searchResponse openLibrarySearchResponse
	if err := json.Unmarshal(payload, &searchResponse); err != nil {
		f.logger.Error(err, "Failed to unmarshal the search response")
		return openLibraryDoc{}, err
	}

	if len(searchResponse.Docs) == 0 {
		return openLibraryDoc{}, fmt.Errorf("no books found for %q: %w", title, domain.ErrBookNotFound)
	}

	return searchResponse.Docs[0], nil
}
