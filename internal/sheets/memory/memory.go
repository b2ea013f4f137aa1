package memory

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"spese-tracker/internal/core"
	ports "spese-tracker/internal/sheets"
	"spese-tracker/internal/sheets/csvfile"
)

var _ ports.ExpenseStore = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New(seed ...core.Expense) *Store {
	return &Store{items: slices.Clone(seed)}
}

// NewFromFile seeds the store from a CSV file in the csvfile row format.
// A missing or unreadable file gives an empty store.
func NewFromFile(path string) *Store {
	f, err := os.Open(path)
	if err != nil {
		return New()
	}
	defer f.Close()
	seed, err := csvfile.Decode(f, nil)
	if err != nil {
		return New()
	}
	return New(seed...)
}

// Append stores the expense and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Load returns a copy of every stored expense.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}
