// Package shell implements the numbered interactive menu.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"spese-tracker/internal/core"
	applog "spese-tracker/internal/log"
)

// Service is what the shell needs from the expense service.
type Service interface {
	Record(ctx context.Context, e core.Expense) (string, error)
	List(ctx context.Context) ([]core.Expense, error)
	FilterByCategory(ctx context.Context, category string) ([]core.Expense, error)
	FilterByDateRange(ctx context.Context, start, end string) ([]core.Expense, error)
	FilterByCategories(ctx context.Context, list string) ([]core.Expense, error)
	Summary(ctx context.Context) (core.Summary, error)
	Report(ctx context.Context, path string) (core.Summary, error)
}

// errInputClosed ends the session when stdin reaches EOF.
var (
	errInputClosed = errors.New("input closed")
	errReadInput   = errors.New("read input")
)

type handler func(ctx context.Context) error

type Shell struct {
	in         *bufio.Reader
	out        io.Writer
	svc        Service
	reportPath string
	logger     *applog.Logger
	handlers   map[Command]handler
}

func New(in io.Reader, out io.Writer, svc Service, reportPath string, logger *applog.Logger) *Shell {
	if logger == nil {
		logger = applog.Discard()
	}
	s := &Shell{
		in:         bufio.NewReader(in),
		out:        out,
		svc:        svc,
		reportPath: reportPath,
		logger:     logger.WithComponent(applog.ComponentShell),
	}
	s.handlers = map[Command]handler{
		CommandRecord:  s.record,
		CommandView:    s.view,
		CommandFilter:  s.filter,
		CommandSummary: s.summary,
		CommandReport:  s.report,
	}
	return s
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Failed commands are reported and the loop carries on. A read failure other
// than end of input is returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu()
		line, err := s.prompt("Select an option: ")
		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		cmd, ok := ParseCommand(line)
		if !ok {
			fmt.Fprintln(s.out, "Invalid option. Please try again.")
			continue
		}
		if cmd == CommandExit {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		if err := s.handlers[cmd](ctx); err != nil {
			if errors.Is(err, errInputClosed) {
				fmt.Fprintln(s.out)
				return nil
			}
			if errors.Is(err, errReadInput) {
				return err
			}
			s.logger.WarnContext(ctx, "Command failed", applog.FieldOperation, cmd.String(), applog.FieldError, err)
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Expense Tracker")
	for _, c := range Commands() {
		fmt.Fprintf(s.out, "%d. %s\n", c, c)
	}
}

// prompt reads one line of any length. A final line without a newline is
// still returned; only an empty read at end of input is errInputClosed.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %w", errReadInput, err)
	}
	if err != nil && line == "" {
		return "", errInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask re-prompts until validate accepts the input.
func ask[T any](s *Shell, label string, validate func(string) (T, error)) (T, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := validate(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(s.out, "Invalid input: %v. Please try again.\n", err)
	}
}

func (s *Shell) record(ctx context.Context) error {
	amount, err := ask(s, "Enter amount: ", core.ValidateAmount)
	if err != nil {
		return err
	}
	category, err := ask(s, "Enter category: ", core.ValidateCategory)
	if err != nil {
		return err
	}
	description, err := ask(s, "Enter description: ", core.ValidateDescription)
	if err != nil {
		return err
	}
	date, err := ask(s, "Enter date (YYYY-MM-DD, blank for today): ", core.ValidateDate)
	if err != nil {
		return err
	}

	e := core.Expense{Amount: amount, Category: category, Description: description, Date: date}
	if _, err := s.svc.Record(ctx, e); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Expense recorded successfully.")
	return nil
}

func (s *Shell) view(ctx context.Context) error {
	expenses, err := s.svc.List(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Fprintln(s.out, "No expenses recorded yet.")
		return nil
	}
	return s.printExpenses(expenses)
}

func (s *Shell) filter(ctx context.Context) error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Filter Expenses")
	for _, m := range []filterMode{filterByCategory, filterByDateRange, filterByCategories} {
		fmt.Fprintf(s.out, "%d. %s\n", m, filterLabels[m])
	}
	line, err := s.prompt("Select a filter: ")
	if err != nil {
		return err
	}
	mode, ok := parseFilterMode(line)
	if !ok {
		fmt.Fprintln(s.out, "Invalid option.")
		return nil
	}

	var matches []core.Expense
	switch mode {
	case filterByCategory:
		category, err := s.prompt("Enter category: ")
		if err != nil {
			return err
		}
		if matches, err = s.svc.FilterByCategory(ctx, category); err != nil {
			return err
		}
	case filterByDateRange:
		start, err := s.prompt("Enter start date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		end, err := s.prompt("Enter end date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		matches, err = s.svc.FilterByDateRange(ctx, start, end)
		if errors.Is(err, core.ErrInvalidDateFormat) {
			fmt.Fprintln(s.out, "Invalid date format. Please use YYYY-MM-DD.")
			return nil
		}
		if err != nil {
			return err
		}
	case filterByCategories:
		list, err := s.prompt("Enter categories (comma-separated): ")
		if err != nil {
			return err
		}
		if matches, err = s.svc.FilterByCategories(ctx, list); err != nil {
			return err
		}
	}

	if len(matches) == 0 {
		fmt.Fprintln(s.out, "No matching expenses found.")
		return nil
	}
	return s.printExpenses(matches)
}

func (s *Shell) summary(ctx context.Context) error {
	sum, err := s.svc.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Total: $%s across %d expenses\n", sum.Total, sum.Count)
	fmt.Fprintln(s.out, "By category:")
	for _, c := range sum.ByCategory {
		fmt.Fprintf(s.out, "  %s: $%s\n", c.Name, c.Amount)
	}
	fmt.Fprintln(s.out, "By month:")
	for _, m := range sum.ByMonth {
		fmt.Fprintf(s.out, "  %s: $%s\n", m.Month, m.Amount)
	}
	return nil
}

func (s *Shell) report(ctx context.Context) error {
	if _, err := s.svc.Report(ctx, s.reportPath); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Report written to %s\n", s.reportPath)
	return nil
}

func (s *Shell) printExpenses(expenses []core.Expense) error {
	return WriteTable(s.out, expenses)
}

// WriteTable prints expenses as aligned columns.
func WriteTable(w io.Writer, expenses []core.Expense) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t$%s\t%s\t%s\n", e.Date, e.Amount, e.Category, e.Description)
	}
	return tw.Flush()
}
