package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slahq/sla/internal/state"
	"github.com/slahq/sla/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long: `Start the SLA API server. Migrations are applied on startup and
the run worker starts alongside the server when enabled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := newLogger()

			store, err := state.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(); err != nil {
				return err
			}

			srv, err := ui.NewServer(cfg, store, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}
}
