// Package report renders expense summaries as a plain-text document.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"spese-tracker/internal/core"
	"spese-tracker/internal/sheets"
)

const (
	MonthlyTotalsTitle = "Monthly Totals"
	TopCategoriesTitle = "Top Spending Categories"
)

// Render writes the monthly totals (ascending) followed by the category
// totals (highest first). Amounts always carry two decimals.
func Render(w io.Writer, s core.Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, MonthlyTotalsTitle)
	for _, m := range s.ByMonth {
		fmt.Fprintf(bw, "%s: $%s\n", m.Month, m.Amount)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, TopCategoriesTitle)
	for _, c := range s.TopCategories {
		fmt.Fprintf(bw, "%s: $%s\n", c.Name, c.Amount)
	}

	return bw.Flush()
}

// String is Render into a string.
func String(s core.Summary) string {
	var buf bytes.Buffer
	_ = Render(&buf, s)
	return buf.String()
}

// WriteFile renders the report to path. The file is written next to its
// destination and renamed into place, so a failed write never leaves a
// truncated report behind.
func WriteFile(path string, s core.Summary) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return fmt.Errorf("%w: create report in %s: %v", sheets.ErrIO, dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := Render(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write report: %v", sheets.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close report: %v", sheets.ErrIO, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod report: %v", sheets.ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: save report %s: %v", sheets.ErrIO, path, err)
	}
	return nil
}
