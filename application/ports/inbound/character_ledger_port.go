package inbound

import (
	"context"

	"github.com/a1j9o94/visual-audio-books/domain"
)

// CharacterLedgerPort accumulates character descriptions discovered
// across a book's segments. Merge appends without deduplicating by
// name; duplicate names may accumulate.
type CharacterLedgerPort interface {
	Get(ctx context.Context, bookTitle string) ([]domain.Character, error)
	Merge(ctx context.Context, bookTitle string, newCharacters []domain.Character) error
}
