package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopsense/shopsense/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("shopsense %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
