package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"spese-tracker/internal/core"
	applog "spese-tracker/internal/log"
	"spese-tracker/internal/sheets"
	"spese-tracker/internal/sheets/memory"
)

type fakePublisher struct {
	refs []string
	err  error
}

func (p *fakePublisher) PublishExpenseRecorded(_ context.Context, ref string, _ core.Expense) error {
	p.refs = append(p.refs, ref)
	return p.err
}

type failingStore struct{}

func (failingStore) Append(context.Context, core.Expense) (string, error) {
	return "", sheets.ErrIO
}

func (failingStore) Load(context.Context) ([]core.Expense, error) {
	return nil, sheets.ErrIO
}

func scenario() []core.Expense {
	return []core.Expense{
		{Amount: core.Money{Cents: 1250}, Category: "Food", Description: "Lunch", Date: core.NewDate(2024, 1, 15)},
		{Amount: core.Money{Cents: 700}, Category: "Food", Description: "Coffee", Date: core.NewDate(2024, 1, 20)},
		{Amount: core.Money{Cents: 4000}, Category: "Transport", Description: "Taxi", Date: core.NewDate(2024, 2, 1)},
	}
}

func TestRecordPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub, nil)
	ctx := context.Background()

	ref, err := svc.Record(ctx, core.Expense{Amount: core.Money{Cents: 1250}, Category: " Food ", Description: "Lunch", Date: core.NewDate(2024, 1, 15)})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if diff := cmp.Diff([]string{ref}, pub.refs); diff != "" {
		t.Fatalf("published refs mismatch (-want +got):\n%s", diff)
	}
	got, _ := svc.List(ctx)
	if len(got) != 1 || got[0].Category != "Food" {
		t.Fatalf("expected trimmed stored expense, got %+v", got)
	}
}

func TestRecordPublishFailureIsNotFatal(t *testing.T) {
	svc := NewExpenseService(memory.New(), &fakePublisher{err: errors.New("broker down")}, nil)
	if _, err := svc.Record(context.Background(), scenario()[0]); err != nil {
		t.Fatalf("publish failure must not fail Record: %v", err)
	}
}

func TestRecordValidation(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub, nil)
	_, err := svc.Record(context.Background(), core.Expense{Amount: core.Money{Cents: 100}, Category: "x", Description: " ", Date: core.NewDate(2024, 1, 1)})
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if len(pub.refs) != 0 {
		t.Fatalf("nothing should be published for invalid input")
	}
}

func TestRecordStoreFailure(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(failingStore{}, pub, nil)
	_, err := svc.Record(context.Background(), scenario()[0])
	if !errors.Is(err, sheets.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if len(pub.refs) != 0 {
		t.Fatalf("nothing should be published when the store fails")
	}
}

func TestQueries(t *testing.T) {
	svc := NewExpenseService(memory.New(scenario()...), nil, nil)
	ctx := context.Background()
	all := scenario()

	got, err := svc.FilterByCategory(ctx, "food")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(all[:2], got); diff != "" {
		t.Fatalf("FilterByCategory mismatch (-want +got):\n%s", diff)
	}

	got, err = svc.FilterByDateRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(all[:2], got); diff != "" {
		t.Fatalf("FilterByDateRange mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.FilterByDateRange(ctx, "Jan 1", "2024-01-31"); !errors.Is(err, core.ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}

	got, err = svc.FilterByCategories(ctx, "transport, FOOD")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(all, got); diff != "" {
		t.Fatalf("FilterByCategories mismatch (-want +got):\n%s", diff)
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Total.Cents != 5950 || sum.TopCategories[0].Name != "Transport" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestQueriesPropagateLoadErrors(t *testing.T) {
	svc := NewExpenseService(failingStore{}, nil, nil)
	ctx := context.Background()
	if _, err := svc.List(ctx); !errors.Is(err, sheets.ErrIO) {
		t.Fatalf("List: %v", err)
	}
	if _, err := svc.Summary(ctx); !errors.Is(err, sheets.ErrIO) {
		t.Fatalf("Summary: %v", err)
	}
	if _, err := svc.FilterByCategories(ctx, "food"); !errors.Is(err, sheets.ErrIO) {
		t.Fatalf("FilterByCategories: %v", err)
	}
}

func TestReport(t *testing.T) {
	svc := NewExpenseService(memory.New(scenario()...), nil, nil)
	path := filepath.Join(t.TempDir(), "expense_report.txt")

	sum, err := svc.Report(context.Background(), path)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if sum.Count != 3 {
		t.Fatalf("unexpected summary count %d", sum.Count)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2024-01: $19.50") || !strings.Contains(string(data), "Transport: $40.00") {
		t.Fatalf("unexpected report:\n%s", data)
	}

	if _, err := svc.Report(context.Background(), filepath.Join(t.TempDir(), "nope", "r.txt")); !errors.Is(err, sheets.ErrIO) {
		t.Fatalf("expected ErrIO for unwritable report, got %v", err)
	}
}

func TestOperationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Component: applog.ComponentApp, Output: &buf})
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(memory.New(scenario()...), pub, logger)
	ctx := context.Background()

	e := core.Expense{Amount: core.Money{Cents: 100}, Category: "Food", Description: "Gum", Date: core.NewDate(2024, 3, 1)}
	if _, err := svc.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := svc.FilterByCategory(ctx, "food"); err != nil {
		t.Fatalf("FilterByCategory: %v", err)
	}
	if _, err := svc.Report(ctx, filepath.Join(t.TempDir(), "r.txt")); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"operation=" + applog.OpPublish,
		"operation=" + applog.OpLoad,
		"operation=" + applog.OpFilter,
		"operation=" + applog.OpSummary,
		"operation=" + applog.OpReport,
		"component=" + applog.ComponentReport,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
