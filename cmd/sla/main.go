// Command sla runs the supply-chain analytics service.
package main

import (
	"fmt"
	"os"

	"github.com/slahq/sla/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
