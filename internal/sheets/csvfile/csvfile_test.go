package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"spese-tracker/internal/core"
	ports "spese-tracker/internal/sheets"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.csv"), nil)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestAppendThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "expenses.csv")
	s := New(path, nil)
	ctx := context.Background()

	in := []core.Expense{
		{Amount: core.Money{Cents: 1250}, Category: "Food", Description: "Lunch, with friends", Date: core.NewDate(2024, 1, 15)},
		{Amount: core.Money{Cents: 700}, Category: "Food", Description: `Coffee "to go"`, Date: core.NewDate(2024, 1, 20)},
		{Amount: core.Money{Cents: 4000}, Category: "Transport", Description: "Taxi", Date: core.NewDate(2024, 2, 1)},
	}
	for _, e := range in {
		if _, err := s.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "12.50,Food,\"Lunch, with friends\",2024-01-15\n") {
		t.Fatalf("unexpected file contents:\n%s", raw)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	s := New(path, nil)
	_, err := s.Append(context.Background(), core.Expense{Amount: core.Money{Cents: 0}, Category: "x", Description: "y", Date: core.NewDate(2024, 1, 1)})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("file should not have been created")
	}
}

func TestAppendUnwritable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the open fail.
	path := filepath.Join(dir, "expenses.csv")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	s := New(path, nil)
	_, err := s.Append(context.Background(), core.Expense{Amount: core.Money{Cents: 1}, Category: "x", Description: "y", Date: core.NewDate(2024, 1, 1)})
	if !errors.Is(err, ports.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	content := strings.Join([]string{
		"12.50,Food,Lunch,2024-01-15",
		"7.00,Food,Coffee",                  // 3 fields
		"1.00,Food,Coffee,2024-01-16,extra", // 5 fields
		"abc,Food,Bad amount,2024-01-17",
		"3.00,Food,Bad date,17/01/2024",
		"-2,Food,Negative,2024-01-18",
		"4.00, ,Blank category,2024-01-18",
		"",
		"40,Transport,Taxi,2024-02-01",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var skipped []int
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := Decode(f, func(row int, _ error) { skipped = append(skipped, row) })
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []core.Expense{
		{Amount: core.Money{Cents: 1250}, Category: "Food", Description: "Lunch", Date: core.NewDate(2024, 1, 15)},
		{Amount: core.Money{Cents: 4000}, Category: "Transport", Description: "Taxi", Date: core.NewDate(2024, 2, 1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
	if len(skipped) != 6 {
		t.Fatalf("expected 6 skipped rows, got %v", skipped)
	}

	loaded, err := New(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Fatalf("load mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRowKeepsText(t *testing.T) {
	e, err := DecodeRow([]string{" 12.5 ", " Food ", "Lunch ", " 2024-01-15"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := core.Expense{Amount: core.Money{Cents: 1250}, Category: " Food ", Description: "Lunch ", Date: core.NewDate(2024, 1, 15)}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Fatalf("DecodeRow mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendThenLoadIsFieldForField(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "expenses.csv"), nil)
	ctx := context.Background()

	in := []core.Expense{
		{Amount: core.Money{Cents: 990}, Category: " Food ", Description: "Lunch ", Date: core.NewDate(2024, 4, 1)},
		{Amount: core.Money{Cents: 100}, Category: "Books", Description: strings.Repeat("long ", 50), Date: core.NewDate(2024, 4, 2)},
		{Amount: core.Money{Cents: 200}, Category: "Food", Description: strings.Repeat("食", 80), Date: core.NewDate(2024, 4, 3)},
	}
	for _, e := range in {
		if _, err := s.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadKeepsLongDescriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	long := strings.Repeat("d", 250)
	content := "12.50,Food,Lunch,2024-01-15\n3.00,Food," + long + ",2024-01-16\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := New(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[1].Description != long {
		t.Fatalf("expected both rows with the long description intact, got %d rows", len(got))
	}
}
