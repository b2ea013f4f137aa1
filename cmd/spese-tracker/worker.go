package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"spese-tracker/internal/cli"
	"spese-tracker/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Mirror recorded expenses from AMQP into the selected backend",
	Long: `Consume expense recorded events from AMQP_QUEUE and append each one to the
backend chosen with --backend, e.g. to keep a Google Sheet in step with a
local CSV ledger. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		if app.Events == nil {
			return errors.New("worker needs a reachable AMQP broker: set AMQP_URL")
		}
		return worker.NewMirrorWorker(app.Store, app.Logger).Run(ctx, app.Events)
	})
}
