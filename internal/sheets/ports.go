package sheets

import (
	"context"
	"errors"

	"spese-tracker/internal/core"
)

// ErrIO marks failures to read or write a backing store. Backends wrap it so
// callers can tell storage trouble apart from validation errors.
var ErrIO = errors.New("storage i/o error")

// Ports for outbound adapters.
type (
	ExpenseWriter interface {
		// Append persists one expense as given and returns a backend-specific
		// reference. Load returns it field for field; text is not trimmed.
		Append(ctx context.Context, e core.Expense) (ref string, err error)
	}

	// ExpenseLoader returns every valid stored expense in insertion order.
	// A store that does not exist yet yields no expenses and no error.
	ExpenseLoader interface {
		Load(ctx context.Context) ([]core.Expense, error)
	}

	ExpenseStore interface {
		ExpenseWriter
		ExpenseLoader
	}
)
