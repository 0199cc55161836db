package outbound

import (
	"context"

	"github.com/a1j9o94/visual-audio-books/domain"
)

// CharacterStorePort persists the accumulated character list for a book,
// addressed by a sanitized book-title key. Persist replaces the prior
// stored sequence wholesale; Load returns an empty sequence for a title
// that was never persisted.
type CharacterStorePort interface {
	Persist(ctx context.Context, bookTitle string, characters []domain.Character) error
	Load(ctx context.Context, bookTitle string) ([]domain.Character, error)
}
