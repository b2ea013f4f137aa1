package cache

import (
	"context"
	"slices"
	"time"

	"spese-tracker/internal/core"
	applog "spese-tracker/internal/log"
	"spese-tracker/internal/sheets"
)

const loadKey = "expenses"

// Store is a read-through cache in front of a slow ExpenseStore. Loads are
// served from memory for ttl; every successful Append invalidates.
type Store struct {
	next   sheets.ExpenseStore
	loads  *LRUCache[[]core.Expense]
	logger *applog.Logger
}

var _ sheets.ExpenseStore = (*Store)(nil)

func NewStore(next sheets.ExpenseStore, ttl time.Duration, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Store{
		next:   next,
		loads:  NewLRUCache[[]core.Expense](1, ttl),
		logger: logger.WithComponent(applog.ComponentCache),
	}
}

func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	if cached, ok := s.loads.Get(loadKey); ok {
		s.logger.DebugContext(ctx, "Serving expenses from cache", applog.FieldCount, len(cached))
		return slices.Clone(cached), nil
	}
	expenses, err := s.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.loads.Set(loadKey, slices.Clone(expenses))
	return expenses, nil
}

func (s *Store) Append(ctx context.Context, e core.Expense) (string, error) {
	ref, err := s.next.Append(ctx, e)
	if err != nil {
		return "", err
	}
	s.loads.Delete(loadKey)
	return ref, nil
}
