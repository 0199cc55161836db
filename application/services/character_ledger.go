package services

import (
	"context"
	"sync"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/domain"
)

// characterLedger keeps the per-book character registry in memory and
// writes the full replacement list through to the store on every merge.
// Merges for a given title are serialized by the orchestrator's
// ascending-id scheduling; the mutex only protects against lookups from
// other sessions.
type characterLedger struct {
	logger outbound.LoggerPort
	store  outbound.CharacterStorePort

	mu     sync.Mutex
	loaded map[string]bool
	books  map[string][]domain.Character
}

func NewCharacterLedger(logger outbound.LoggerPort, store outbound.CharacterStorePort) inbound.CharacterLedgerPort {
	return &characterLedger{
		logger: logger,
		store:  store,
		loaded: make(map[string]bool),
		books:  make(map[string][]domain.Character),
	}
}

func (l *characterLedger) Get(ctx context.Context, bookTitle string) ([]domain.Character, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.warmLocked(ctx, bookTitle); err != nil {
		return nil, err
	}

	characters := make([]domain.Character, len(l.books[bookTitle]))
	copy(characters, l.books[bookTitle])
	return characters, nil
}

func (l *characterLedger) Merge(ctx context.Context, bookTitle string, newCharacters []domain.Character) error {
	if len(newCharacters) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.warmLocked(ctx, bookTitle); err != nil {
		return err
	}

	// Append without deduplicating by name: a character re-introduced
	// with a new description accumulates alongside the old entry.
	updated := append(l.books[bookTitle], newCharacters...)
	if err := l.store.Persist(ctx, bookTitle, updated); err != nil {
		l.logger.ErrorWithFields(err, "Failed to persist characters", map[string]interface{}{
			"book_title": bookTitle,
		})
		return err
	}
	l.books[bookTitle] = updated

	return nil
}

func (l *characterLedger) warmLocked(ctx context.Context, bookTitle string) error {
	if l.loaded[bookTitle] {
		return nil
	}

	characters, err := l.store.Load(ctx, bookTitle)
	if err != nil {
		l.logger.ErrorWithFields(err, "Failed to load characters", map[string]interface{}{
			"book_title": bookTitle,
		})
		return err
	}
	l.books[bookTitle] = characters
	l.loaded[bookTitle] = true

	return nil
}
