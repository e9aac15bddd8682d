package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slahq/sla/internal/state"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			store, err := state.Open(cfg.Database.Driver, cfg.Database.DSN, newLogger())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(); err != nil {
				return err
			}

			ver, err := store.MigrationVersion()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "database at migration %d\n", ver)
			return nil
		},
	}
}
