// Package cli provides the command-line interface for the SLA service.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/slahq/sla/internal/config"
	"github.com/slahq/sla/internal/version"
)

var (
	configDir string
	verbose   bool
	cfg       *config.Config
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sla",
		Short: "SLA - Supply-chain analytics service",
		Long: `SLA serves the supply-chain analytics API: forecast and
cost-projection runs, the exception queue, and per-user dashboards.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
				return nil
			}

			loaded, err := config.Load(configDir)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing sla.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		NewServeCommand(),
		NewMigrateCommand(),
		NewRunsCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// getConfig returns the configuration loaded by the root command.
func getConfig() *config.Config {
	return cfg
}

// newLogger builds the process logger honoring the verbose flag.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
