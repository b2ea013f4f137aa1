package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"spese-tracker/internal/cli"
	"spese-tracker/internal/core"
	"spese-tracker/internal/report"
	"spese-tracker/internal/shell"
)

var (
	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Record one expense",
		Args:  cobra.NoArgs,
		RunE:  runAdd,
	}
	addAmount      string
	addCategory    string
	addDescription string
	addDate        string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally filtered",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCategory   string
	listCategories string
	listFrom       string
	listTo         string

	summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Print totals by category and by month",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Write the text report",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	reportOut string
)

func init() {
	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "positive amount, e.g. 12.50")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "expense category")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "expense description")
	addCmd.Flags().StringVar(&addDate, "date", "", "date as YYYY-MM-DD (default today)")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("description")

	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only this category")
	listCmd.Flags().StringVar(&listCategories, "categories", "", "only these comma-separated categories")
	listCmd.Flags().StringVar(&listFrom, "from", "", "start date YYYY-MM-DD (inclusive, needs --to)")
	listCmd.Flags().StringVar(&listTo, "to", "", "end date YYYY-MM-DD (inclusive, needs --from)")
	listCmd.MarkFlagsMutuallyExclusive("category", "categories")
	listCmd.MarkFlagsRequiredTogether("from", "to")

	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "report path (default REPORT_FILE)")
}

// parseAddFlags validates the add flags the same way the interactive prompts do.
func parseAddFlags() (core.Expense, error) {
	amount, err := core.ValidateAmount(addAmount)
	if err != nil {
		return core.Expense{}, err
	}
	category, err := core.ValidateCategory(addCategory)
	if err != nil {
		return core.Expense{}, err
	}
	description, err := core.ValidateDescription(addDescription)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := core.ValidateDate(addDate)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{Amount: amount, Category: category, Description: description, Date: date}, nil
}

func runAdd(cmd *cobra.Command, _ []string) error {
	e, err := parseAddFlags()
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		ref, err := app.Service.Record(ctx, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Expense recorded successfully (%s).\n", ref)
		return nil
	})
}

func runList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		expenses, err := app.Service.List(ctx)
		if err != nil {
			return err
		}
		if listCategory != "" {
			expenses = core.FilterByCategory(expenses, listCategory)
		}
		if listCategories != "" {
			expenses = core.FilterByCategories(expenses, listCategories)
		}
		if listFrom != "" {
			expenses, err = core.FilterByDateRange(expenses, listFrom, listTo)
			if errors.Is(err, core.ErrInvalidDateFormat) {
				return fmt.Errorf("--from/--to: %w", err)
			}
			if err != nil {
				return err
			}
		}
		if len(expenses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching expenses found.")
			return nil
		}
		return shell.WriteTable(cmd.OutOrStdout(), expenses)
	})
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		sum, err := app.Service.Summary(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total: $%s across %d expenses\n\n", sum.Total, sum.Count)
		return report.Render(cmd.OutOrStdout(), sum)
	})
}

func runReport(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		path := reportOut
		if path == "" {
			path = app.Config.ReportFile
		}
		if _, err := app.Service.Report(ctx, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	})
}
