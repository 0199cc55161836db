package config

import (
	"fmt"
	"os"
)

type OpenLibraryConfig struct {
	SearchUrl string
	// GutenbergTextUrl is a format string taking the Gutenberg edition
	// id twice, e.g. "https://www.gutenberg.org/cache/epub/%s/pg%s.txt".
	GutenbergTextUrl string
}

func GetOpenLibraryConfig() (*OpenLibraryConfig, error) {
	searchUrl := os.Getenv("OPENLIBRARY_SEARCH_URL")
	if searchUrl == "" {
		return nil, fmt.Errorf("OPENLIBRARY_SEARCH_URL must be set")
	}
	gutenbergTextUrl := os.Getenv("GUTENBERG_TEXT_URL")
	if gutenbergTextUrl == "" {
		return nil, fmt.Errorf("GUTENBERG_TEXT_URL must be set")
	}

	return &OpenLibraryConfig{
		SearchUrl:        searchUrl,
		GutenbergTextUrl: gutenbergTextUrl,
	}, nil
}
