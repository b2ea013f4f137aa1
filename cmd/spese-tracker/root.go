package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"spese-tracker/internal/cli"
	"spese-tracker/internal/shell"
)

var backendFlag string

var rootCmd = &cobra.Command{
	Use:           "spese-tracker",
	Short:         "Personal expense tracker",
	Long:          `Record, list, filter and summarize personal expenses. Run without a subcommand for the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "data backend: csv, memory, sqlite or sheets (overrides DATA_BACKEND)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reportCmd)
}

// withApp loads configuration, builds the app and runs fn with it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *cli.App) error) error {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig(backendFlag)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	app, err := cli.InitApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Cleanup failed", "error", err)
		}
	}()

	return fn(ctx, app)
}

func runShell(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		app.Logger.Debug("Starting interactive shell", "backend", app.Config.DataBackend)
		sh := shell.New(os.Stdin, cmd.OutOrStdout(), app.Service, app.Config.ReportFile, app.Logger)
		if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
}
