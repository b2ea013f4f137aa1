package services

import (
	"context"
	"fmt"

	"spese-tracker/internal/core"
	applog "spese-tracker/internal/log"
	"spese-tracker/internal/report"
	"spese-tracker/internal/sheets"
)

// Publisher announces recorded expenses. Implemented by *amqp.Client.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, ref string, e core.Expense) error
}

// ExpenseService loads the whole store for every query and hands the result
// to the pure filter and aggregation functions in core.
type ExpenseService struct {
	store     sheets.ExpenseStore
	publisher Publisher
	logger    *applog.Logger
}

// NewExpenseService builds a service. publisher may be nil.
func NewExpenseService(store sheets.ExpenseStore, publisher Publisher, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ExpenseService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentExpense),
	}
}

// Record validates and stores a new expense, then publishes an event for it.
// Publishing is best effort: the expense is already saved.
func (s *ExpenseService) Record(ctx context.Context, e core.Expense) (string, error) {
	e, err := core.NewExpense(e.Amount, e.Category, e.Description, e.Date)
	if err != nil {
		return "", err
	}

	ref, err := s.store.Append(ctx, e)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save expense",
			applog.NewFields().WithOperation(applog.OpRecord).WithError(err).ToSlice()...)
		return "", fmt.Errorf("save expense: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseRecorded(ctx, ref, e); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish expense recorded message",
				applog.FieldOperation, applog.OpPublish, applog.FieldRef, ref, applog.FieldError, err)
		}
	}
	return ref, nil
}

// List returns every stored expense in insertion order.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	s.logger.DebugContext(ctx, "Loaded expenses", applog.FieldOperation, applog.OpLoad, applog.FieldCount, len(expenses))
	return expenses, nil
}

func (s *ExpenseService) FilterByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.filtered(ctx, core.FilterByCategory(expenses, category)), nil
}

// FilterByDateRange returns core.ErrInvalidDateFormat (wrapped) for a bad
// bound without touching the store.
func (s *ExpenseService) FilterByDateRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	from, err := core.ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := core.ParseDate(end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.filtered(ctx, core.FilterByDates(expenses, from, to)), nil
}

func (s *ExpenseService) FilterByCategories(ctx context.Context, list string) ([]core.Expense, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.filtered(ctx, core.FilterByCategories(expenses, list)), nil
}

func (s *ExpenseService) filtered(ctx context.Context, matches []core.Expense) []core.Expense {
	s.logger.DebugContext(ctx, "Filtered expenses", applog.FieldOperation, applog.OpFilter, applog.FieldCount, len(matches))
	return matches
}

// Summary aggregates the whole store.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	summary := core.Summarize(expenses)
	s.logger.DebugContext(ctx, "Summarized expenses",
		applog.FieldOperation, applog.OpSummary, applog.FieldCount, summary.Count)
	return summary, nil
}

// Report writes the text report for the whole store to path.
func (s *ExpenseService) Report(ctx context.Context, path string) (core.Summary, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	logger := s.logger.WithComponent(applog.ComponentReport)
	if err := report.WriteFile(path, summary); err != nil {
		logger.ErrorContext(ctx, "Failed to write report",
			applog.FieldOperation, applog.OpReport, applog.FieldPath, path, applog.FieldError, err)
		return core.Summary{}, err
	}
	logger.InfoContext(ctx, "Report written",
		applog.FieldOperation, applog.OpReport, applog.FieldPath, path, applog.FieldCount, summary.Count)
	return summary, nil
}
