package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/runs"
	"github.com/slahq/sla/internal/state"
	"github.com/slahq/sla/internal/ui/notifier"
)

// NewRunsCommand creates the runs command group.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and drive recorded runs",
	}
	cmd.AddCommand(newRunsListCommand(), newRunsDrainCommand())
	return cmd
}

func newRunsDrainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drain",
		Short: "Process queued runs until none remain",
		Long: `Claim and process queued runs one at a time without starting the
server. Useful when the run worker is disabled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := newLogger()

			store, err := state.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			worker := runs.NewWorker(store, notifier.New(), logger,
				cfg.Worker.PollInterval, cfg.Worker.MaxBackoff)

			processed := 0
			for {
				ok, err := worker.ProcessOne(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				processed++
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "processed %d run(s)\n", processed)
			return nil
		},
	}
}

func newRunsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs across all owners",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			store, err := state.Open(cfg.Database.Driver, cfg.Database.DSN, newLogger())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Kind", "Owner", "Status", "Created", "Duration", "Error"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					run.ID,
					run.Kind,
					run.OwnerID,
					run.Status,
					run.CreatedAt.UTC().Format(time.RFC3339),
					runDuration(run),
					run.Error,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of runs to show")
	return cmd
}

func runDuration(run *core.Run) string {
	if run.StartedAt == nil || run.CompletedAt == nil {
		return ""
	}
	return run.CompletedAt.Sub(*run.StartedAt).Round(time.Millisecond).String()
}
