package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slahq/sla/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sla v%s\n", version.Version)
		},
	}
}
