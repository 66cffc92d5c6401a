// Package commands implements the shopsense CLI.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopsense",
		Short: "Product recommendation engine",
		Long: `shopsense recommends catalog products for a free-text query by
combining semantic retrieval over product descriptions with
preference-aware re-ranking, a generated summary, a spec comparison
table, and review sentiment scoring.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Load .env for API keys; absence is fine.
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(
		NewIndexCmd(),
		NewSearchCmd(),
		NewRecommendCmd(),
		NewCompareCmd(),
		NewReviewsCmd(),
		NewServeCmd(),
		NewVersionCmd(),
	)

	return cmd
}
