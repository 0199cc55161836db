package services

import (
	"context"
	"testing"

	"github.com/a1j9o94/visual-audio-books/domain"
)

func TestLedgerGetBeforeMergeIsEmpty(t *testing.T) {
	ledger := NewCharacterLedger(noopLogger{}, newMemoryCharacterStore())

	characters, err := ledger.Get(context.Background(), "Moby Dick")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(characters) != 0 {
		t.Errorf("expected empty sequence, got %d characters", len(characters))
	}
}

func TestLedgerMergeAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCharacterStore()
	ledger := NewCharacterLedger(noopLogger{}, store)

	ahab := domain.Character{Name: "Ahab", Description: "Obsessed captain"}
	ishmael := domain.Character{Name: "Ishmael", Description: "The narrator"}

	if err := ledger.Merge(ctx, "Moby Dick", []domain.Character{ahab}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if err := ledger.Merge(ctx, "Moby Dick", []domain.Character{ishmael}); err != nil {
		t.Fatal("unexpected error:", err)
	}

	characters, err := ledger.Get(ctx, "Moby Dick")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(characters) != 2 || characters[0] != ahab || characters[1] != ishmael {
		t.Errorf("expected [Ahab, Ishmael] in append order, got %v", characters)
	}

	// Persisted sequence is a full replacement of the prior value.
	stored, _ := store.Load(ctx, "Moby Dick")
	if len(stored) != 2 {
		t.Errorf("expected 2 persisted characters, got %d", len(stored))
	}
}

func TestLedgerKeepsDuplicateNames(t *testing.T) {
	// Documents current behavior: no deduplication by name, a character
	// re-described in a later segment accumulates a second entry.
	ctx := context.Background()
	ledger := NewCharacterLedger(noopLogger{}, newMemoryCharacterStore())

	first := domain.Character{Name: "Ahab", Description: "Obsessed captain"}
	second := domain.Character{Name: "Ahab", Description: "One-legged whaler"}

	if err := ledger.Merge(ctx, "Moby Dick", []domain.Character{first}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if err := ledger.Merge(ctx, "Moby Dick", []domain.Character{second}); err != nil {
		t.Fatal("unexpected error:", err)
	}

	characters, err := ledger.Get(ctx, "Moby Dick")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(characters) != 2 {
		t.Fatalf("expected duplicate names to accumulate, got %v", characters)
	}
}

func TestLedgerWarmStartsFromStore(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCharacterStore()
	queequeg := domain.Character{Name: "Queequeg", Description: "Harpooner"}
	if err := store.Persist(ctx, "Moby Dick", []domain.Character{queequeg}); err != nil {
		t.Fatal("unexpected error:", err)
	}

	ledger := NewCharacterLedger(noopLogger{}, store)
	characters, err := ledger.Get(ctx, "Moby Dick")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(characters) != 1 || characters[0] != queequeg {
		t.Errorf("expected warm start from store, got %v", characters)
	}
}
