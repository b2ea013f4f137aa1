// Package csvfile stores expenses as header-less CSV rows:
//
//	amount,category,description,YYYY-MM-DD
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"spese-tracker/internal/core"
	applog "spese-tracker/internal/log"
	ports "spese-tracker/internal/sheets"
)

// FieldCount is the number of columns in a well-formed row.
const FieldCount = 4

var _ ports.ExpenseStore = (*Store)(nil)

type Store struct {
	path   string
	logger *applog.Logger
}

func New(path string, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Store{path: path, logger: logger.WithComponent(applog.ComponentCSV)}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads every row of the file. Rows that do not decode into a valid
// expense are skipped. A missing file is an empty store.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ports.ErrIO, s.path, err)
	}
	defer f.Close()

	out, err := Decode(f, func(row int, reason error) {
		s.logger.DebugContext(ctx, "Skipping malformed row",
			applog.FieldPath, s.path, applog.FieldRow, row, applog.FieldReason, reason)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ports.ErrIO, s.path, err)
	}
	return out, nil
}

// Append writes one row at the end of the file, creating it if needed.
func (s *Store) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: create directory %s: %v", ports.ErrIO, dir, err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ports.ErrIO, s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Encode(e)); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: write %s: %v", ports.ErrIO, s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: flush %s: %v", ports.ErrIO, s.path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", ports.ErrIO, s.path, err)
	}

	s.logger.InfoContext(ctx, "Expense appended",
		applog.NewFields().WithOperation(applog.OpAppend).
			WithExpense(e.Amount.Cents, e.Category, e.Description, e.Date.String()).ToSlice()...)
	return s.path, nil
}

// Encode turns an expense into its CSV row.
func Encode(e core.Expense) []string {
	return []string{e.Amount.String(), e.Category, e.Description, e.Date.String()}
}

// DecodeRow parses one CSV row. Rows must have exactly FieldCount fields.
// Category and description are kept verbatim so that a loaded record equals
// the appended one.
func DecodeRow(fields []string) (core.Expense, error) {
	if len(fields) != FieldCount {
		return core.Expense{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	amount, err := core.ParseMoney(fields[0])
	if err != nil {
		return core.Expense{}, err
	}
	date, err := core.ParseDate(fields[3])
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{Amount: amount, Category: fields[1], Description: fields[2], Date: date}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// Decode reads rows until EOF. Undecodable rows are reported through skip
// (which may be nil) and left out of the result.
func Decode(r io.Reader, skip func(row int, reason error)) ([]core.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := make([]core.Expense, 0)
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			if skip != nil {
				skip(row, err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		e, err := DecodeRow(fields)
		if err != nil {
			if skip != nil {
				skip(row, err)
			}
			continue
		}
		out = append(out, e)
	}
}
