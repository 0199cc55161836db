package outbound

import "context"

// BookFetcherPort resolves a book title to the full plain text of a
// public-domain edition. Implementations return domain.ErrBookNotFound
// when no match or no downloadable edition exists.
type BookFetcherPort interface {
	FetchBookText(ctx context.Context, title string) (string, error)
}
