package services

import (
	"context"
	"sync"

	"github.com/a1j9o94/visual-audio-books/domain"
)

// Shared test doubles for the service layer.

type noopLogger struct{}

func (noopLogger) Info(string)                                           {}
func (noopLogger) InfoWithFields(string, map[string]interface{})         {}
func (noopLogger) Error(error, string)                                   {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (noopLogger) Debug(string)                                          {}
func (noopLogger) DebugWithFields(string, map[string]interface{})        {}
func (noopLogger) Warn(string)                                           {}
func (noopLogger) WarnWithFields(string, map[string]interface{})         {}

// goDispatcher runs every task on its own goroutine, like an unbounded
// ants pool.
type goDispatcher struct{}

func (goDispatcher) Submit(task func()) error {
	go task()
	return nil
}

// memoryCharacterStore is an in-memory CharacterStorePort.
type memoryCharacterStore struct {
	mu    sync.Mutex
	books map[string][]domain.Character
}

func newMemoryCharacterStore() *memoryCharacterStore {
	return &memoryCharacterStore{books: make(map[string][]domain.Character)}
}

func (m *memoryCharacterStore) Persist(_ context.Context, bookTitle string, characters []domain.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]domain.Character, len(characters))
	copy(stored, characters)
	m.books[bookTitle] = stored
	return nil
}

func (m *memoryCharacterStore) Load(_ context.Context, bookTitle string) ([]domain.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Character(nil), m.books[bookTitle]...), nil
}
